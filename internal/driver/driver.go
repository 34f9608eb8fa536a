package driver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/rbscholtus/gweblog/internal/classify"
	"github.com/rbscholtus/gweblog/internal/config"
	"github.com/rbscholtus/gweblog/internal/counters"
	"github.com/rbscholtus/gweblog/internal/logfmt"
	"github.com/rbscholtus/gweblog/internal/logitem"
	"github.com/rbscholtus/gweblog/internal/spinner"
)

// Counts is the driver's per-run running totals.
type Counts struct {
	Process        uint64
	Invalid        uint64
	ExcludeIP      uint64
	ExcludeCrawler uint64
	ExcludeReferer uint64
	RespSize       uint64
}

// Driver reads lines from a LineSource, parses and classifies each,
// and dispatches to an Aggregator in full mode. It is single-threaded
// cooperative: suspension only happens at Next().
type Driver struct {
	src    LineSource
	cfg    *config.Core
	agg    *counters.Aggregator
	ex     classify.Excluders
	spin   *spinner.Spinner
	opts   logfmt.Options
	counts Counts
}

// New builds a driver. spin may be nil when no progress renderer is
// attached.
func New(src LineSource, cfg *config.Core, agg *counters.Aggregator, ex classify.Excluders, spin *spinner.Spinner) *Driver {
	return &Driver{
		src:  src,
		cfg:  cfg,
		agg:  agg,
		ex:   ex,
		spin: spin,
		opts: logfmt.Options{
			DoubleDecode:   cfg.DoubleDecode,
			AppendMethod:   cfg.AppendMethod,
			AppendProtocol: cfg.AppendProtocol,
		},
	}
}

// Counts returns a snapshot of the driver's running totals.
func (d *Driver) Counts() Counts {
	return d.counts
}

// RunTest implements test mode: process at most n lines without
// dispatching to aggregates. Returns success iff at least one line was
// fully parsed and not every processed line was invalid.
func (d *Driver) RunTest(ctx context.Context, n int) (bool, error) {
	processed := 0
	for n < 0 || processed < n {
		line, err := d.src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false, err
		}
		processed++

		if skipLine(line) {
			continue
		}

		d.incrProcess()
		item, _, rejected := d.parseOnly(line)
		if rejected {
			d.incrInvalid()
			continue
		}
		_ = item
	}

	return d.counts.Process > 0 && d.counts.Process != d.counts.Invalid, nil
}

// RunFull implements full mode: runs to end-of-input (or until ctx is
// canceled for streamed sources), dispatching every retained record to
// the aggregator.
func (d *Driver) RunFull(ctx context.Context) error {
	for {
		line, err := d.src.Next(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}

		if skipLine(line) {
			continue
		}

		d.incrProcess()
		item, res, rejected := d.parseOnly(line)
		if rejected {
			d.incrInvalid()
			continue
		}
		d.counts.RespSize += item.RespSize

		dec := classify.Classify(item, d.cfg, d.ex)

		if dec.ExcludeIP {
			d.counts.ExcludeIP++
			continue
		}
		if dec.ExcludeCrawler {
			d.counts.ExcludeCrawler++
			continue
		}

		site, _ := logfmt.SiteOf(item.Ref)
		if dec.ExcludeReferer {
			d.counts.ExcludeReferer++
			continue
		}

		keyphrase, _ := classify.GoogleKeyphrase(item.Ref)

		d.agg.Dispatch(item, dec.ReqKey, dec.Is404, dec.IsStatic, site, keyphrase, d.cfg.ClientErrToUniqueCount)
		_ = res
	}
}

// parseOnly runs the format-directed line parser only, without
// classification or dispatch; used by both RunTest and RunFull.
func (d *Driver) parseOnly(line string) (*logitem.Item, logfmt.Result, bool) {
	item := &logitem.Item{}
	rejected, res := logfmt.ParseFormat(item, d.cfg.LogFormat, d.cfg.DateFormat, line, d.opts)
	if rejected || !item.Valid() {
		return item, res, true
	}
	return item, res, false
}

// skipLine: lines beginning with '#' are comments, lines that reduce to
// nothing after the `\n` scanner strip are empty.
func skipLine(line string) bool {
	if line == "" {
		return true
	}
	return strings.HasPrefix(line, "#")
}

func (d *Driver) incrProcess() {
	d.counts.Process++
	if d.spin != nil {
		d.spin.IncrProcess()
	}
}

func (d *Driver) incrInvalid() {
	d.counts.Invalid++
	if d.spin != nil {
		d.spin.IncrInvalid()
	}
	slog.Debug("invalid log line")
}
