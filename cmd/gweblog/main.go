// Package main provides the gweblog CLI: a format-directed access-log
// parser and aggregator with test, run, and chart subcommands.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rbscholtus/gweblog/internal/charts"
	"github.com/rbscholtus/gweblog/internal/classify"
	"github.com/rbscholtus/gweblog/internal/config"
	"github.com/rbscholtus/gweblog/internal/counters"
	"github.com/rbscholtus/gweblog/internal/driver"
	"github.com/rbscholtus/gweblog/internal/geo"
	"github.com/rbscholtus/gweblog/internal/ipfilter"
	"github.com/rbscholtus/gweblog/internal/oracle"
	"github.com/urfave/cli/v3"
	"github.com/yassinebenaid/godump"
)

func main() {
	cmd := &cli.Command{
		Name:  "gweblog",
		Usage: "parse and aggregate web access logs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "gweblog.toml", Usage: "path to TOML configuration"},
		},
		Commands: []*cli.Command{
			testCommand(),
			runCommand(),
			chartCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func testCommand() *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "validate a log format against a sample of lines without aggregating",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "-", Usage: "input path, - for stdin"},
			&cli.IntFlag{Name: "lines", Aliases: []string{"n"}, Value: 100, Usage: "number of lines to sample"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			src, err := driver.OpenFile(cmd.String("input"))
			if err != nil {
				return err
			}
			defer src.Close()

			d := driver.New(src, &cfg.Core, nil, classify.Excluders{}, nil)
			ok, err := d.RunTest(ctx, cmd.Int("lines"))
			if err != nil {
				return err
			}

			counts := d.Counts()
			fmt.Printf("processed=%d invalid=%d\n", counts.Process, counts.Invalid)
			if !ok {
				return fmt.Errorf("log_format did not match the sampled lines")
			}
			return nil
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "process a log file to completion and print a summary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "overrides input.path from the config"},
			&cli.BoolFlag{Name: "follow", Aliases: []string{"f"}, Usage: "tail the input file for new lines"},
			&cli.BoolFlag{Name: "dump", Usage: "dump the aggregator's general stats via godump"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			inputPath := cfg.Input.Path
			if v := cmd.String("input"); v != "" {
				inputPath = v
			}

			ex, err := buildExcluders(&cfg.Core)
			if err != nil {
				return err
			}

			var lookup geo.Lookup
			if cfg.GeoIP.CountryDB != "" {
				svc, err := geo.Open(cfg.GeoIP.CountryDB, cfg.GeoIP.CityDB, 4)
				if err != nil {
					return fmt.Errorf("opening geoip database: %w", err)
				}
				defer svc.Close()
				lookup = svc
			}

			agg := counters.New(oracle.Default(), lookup)

			var src driver.LineSource
			if cfg.Input.Follow || cmd.Bool("follow") {
				src, err = driver.OpenFollow(inputPath)
			} else if cfg.Input.LumberjackAddr != "" {
				src, err = driver.ListenLumberjack(cfg.Input.LumberjackAddr, 0)
			} else {
				src, err = driver.OpenFile(inputPath)
			}
			if err != nil {
				return err
			}
			defer src.Close()

			d := driver.New(src, &cfg.Core, agg, ex, nil)
			if err := d.RunFull(ctx); err != nil {
				return err
			}

			printSummary(d, agg)
			if cmd.Bool("dump") {
				dumper := godump.Dumper{HidePrivateFields: true}
				dumper.Println(agg.General)
			}
			return nil
		},
	}
}

func chartCommand() *cli.Command {
	return &cli.Command{
		Name:  "chart",
		Usage: "render an HTML summary chart from a completed run",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "overrides input.path from the config"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "overrides output.chart_path from the config"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			inputPath := cfg.Input.Path
			if v := cmd.String("input"); v != "" {
				inputPath = v
			}
			outPath := cfg.Output.ChartPath
			if v := cmd.String("output"); v != "" {
				outPath = v
			}
			if outPath == "" {
				outPath = "index.html"
			}

			ex, err := buildExcluders(&cfg.Core)
			if err != nil {
				return err
			}

			agg := counters.New(oracle.Default(), nil)
			src, err := driver.OpenFile(inputPath)
			if err != nil {
				return err
			}
			defer src.Close()

			d := driver.New(src, &cfg.Core, agg, ex, nil)
			if err := d.RunFull(ctx); err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			return charts.Render(agg, f)
		},
	}
}

func buildExcluders(core *config.Core) (classify.Excluders, error) {
	var ex classify.Excluders
	var err error

	if len(core.IgnoreIPRanges) > 0 {
		ex.IPRanges, err = ipfilter.NewRanges(core.IgnoreIPRanges)
		if err != nil {
			return ex, err
		}
	}
	if len(core.IgnoreReferers) > 0 {
		ex.RefererIgnore, err = ipfilter.NewGlobSet(core.IgnoreReferers)
		if err != nil {
			return ex, err
		}
	}
	ex.Oracle = oracle.Default()
	return ex, nil
}

func printSummary(d *driver.Driver, agg *counters.Aggregator) {
	counts := d.Counts()
	fmt.Printf("processed:        %s\n", humanize.Comma(int64(counts.Process)))
	fmt.Printf("invalid:          %s\n", humanize.Comma(int64(counts.Invalid)))
	fmt.Printf("excluded (ip):    %s\n", humanize.Comma(int64(counts.ExcludeIP)))
	fmt.Printf("excluded (bot):   %s\n", humanize.Comma(int64(counts.ExcludeCrawler)))
	fmt.Printf("excluded (ref):   %s\n", humanize.Comma(int64(counts.ExcludeReferer)))
	fmt.Printf("bytes served:     %s\n", humanize.Bytes(counts.RespSize))
	fmt.Printf("unique visitors:  %s\n", humanize.Comma(int64(agg.UniqueVisitors.Len())))
	fmt.Printf("distinct hosts:   %s\n", humanize.Comma(int64(agg.Hosts.Len())))
	fmt.Printf("distinct pages:   %s\n", humanize.Comma(int64(agg.Requests.Len())))

	slog.Info("run complete",
		"processed", counts.Process,
		"invalid", counts.Invalid,
		"unique_visitors", agg.UniqueVisitors.Len(),
	)
}
