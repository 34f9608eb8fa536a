// Package driver implements the line-source abstraction and the
// parsing loop that reads lines, runs them through logfmt.ParseFormat,
// classify.Classify, and counters.Aggregator.Dispatch in test or full
// mode.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	lumberv2 "github.com/elastic/go-lumber/server/v2"
	"github.com/fsnotify/fsnotify"
)

// LineBuffer bounds the buffered line length the external interfaces
// section names.
const LineBuffer = 4096

// LineSource yields successive log lines. Next returns io.EOF when
// exhausted (full-file sources) or blocks until the next line arrives
// (streamed sources); it returns a non-nil error for any other failure.
type LineSource interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// FileSource reads lines from a plain file or pipe, released on Close
// the way the component design requires the input handle to be
// released on every exit path.
type FileSource struct {
	f       *os.File
	scanner *bufio.Scanner
}

// OpenFile opens path for line-oriented reading. path == "-" reads
// stdin.
func OpenFile(path string) (*FileSource, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("driver: opening input: %w", err)
		}
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, LineBuffer), LineBuffer)
	return &FileSource{f: f, scanner: sc}, nil
}

func (s *FileSource) Next(ctx context.Context) (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Close releases the underlying file handle. Closing stdin is a no-op;
// callers running a piping session are responsible for reopening
// /dev/tty afterward so a surrounding TUI can read keys again.
func (s *FileSource) Close() error {
	if s.f == os.Stdin {
		return nil
	}
	return s.f.Close()
}

// FollowSource tails a file the way `tail -f` does, using fsnotify to
// wake up on writes instead of polling.
type FollowSource struct {
	f       *os.File
	reader  *bufio.Reader
	watcher *fsnotify.Watcher
	lines   chan string
	errs    chan error
}

// OpenFollow opens path and watches it for appended writes, emitting
// each newly written line as it is terminated.
func OpenFollow(path string) (*FollowSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("driver: opening input: %w", err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		f.Close()
		return nil, err
	}

	fs := &FollowSource{
		f:       f,
		reader:  bufio.NewReaderSize(f, LineBuffer),
		watcher: watcher,
		lines:   make(chan string, 64),
		errs:    make(chan error, 1),
	}
	go fs.watch()
	return fs, nil
}

func (s *FollowSource) watch() {
	var pending string
	for {
		line, err := s.reader.ReadString('\n')
		if err == nil {
			s.lines <- pending + line[:len(line)-1]
			pending = ""
			continue
		}
		if err != io.EOF {
			s.errs <- err
			return
		}
		pending += line
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.errs <- err
			return
		}
	}
}

func (s *FollowSource) Next(ctx context.Context) (string, error) {
	select {
	case line := <-s.lines:
		return line, nil
	case err := <-s.errs:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *FollowSource) Close() error {
	s.watcher.Close()
	return s.f.Close()
}

// LumberjackSource accepts log lines shipped over the Beats/Lumberjack
// protocol (e.g. from Filebeat), using elastic/go-lumber's server
// package as an alternate network line source.
type LumberjackSource struct {
	ln    net.Listener
	srv   *lumberv2.Server
	lines chan string
	errs  chan error
}

// ListenLumberjack starts a Lumberjack v2 server on addr.
func ListenLumberjack(addr string, readTimeout time.Duration) (*LumberjackSource, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("driver: listening for lumberjack: %w", err)
	}
	srv, err := lumberv2.NewWithListener(ln, lumberv2.Timeout(readTimeout))
	if err != nil {
		ln.Close()
		return nil, err
	}

	s := &LumberjackSource{
		ln:    ln,
		srv:   srv,
		lines: make(chan string, 256),
		errs:  make(chan error, 1),
	}
	go s.pump()
	return s, nil
}

func (s *LumberjackSource) pump() {
	for batch := range s.srv.ReceiveChan() {
		for _, ev := range batch.Events {
			if m, ok := ev.(map[string]interface{}); ok {
				if line, ok := m["message"].(string); ok {
					s.lines <- line
				}
			}
		}
		batch.ACK()
	}
}

func (s *LumberjackSource) Next(ctx context.Context) (string, error) {
	select {
	case line := <-s.lines:
		return line, nil
	case err := <-s.errs:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *LumberjackSource) Close() error {
	s.srv.Close()
	return s.ln.Close()
}
