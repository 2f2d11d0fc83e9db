package dockerd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

const streamChannelDepth = 64

// LogStream is one live, cancellable log feed for a container. Lines
// arrive on C until the stream ends (container stopped or removed) or
// Close is called; C is then closed and Err reports why.
type LogStream struct {
	C <-chan LogLine

	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

// NewLogStream wraps a line channel in a LogStream. cancel is invoked on
// Close and must be safe to call more than once. Exposed so test fakes can
// hand the UI a scripted stream.
func NewLogStream(lines <-chan LogLine, cancel context.CancelFunc) *LogStream {
	if cancel == nil {
		cancel = func() {}
	}
	return &LogStream{C: lines, cancel: cancel}
}

// Close cancels the underlying read promptly. Idempotent, safe on every
// exit path.
func (s *LogStream) Close() error {
	s.cancel()
	return nil
}

// Err reports why the stream ended. Only meaningful after C is closed;
// nil means a clean end or caller-initiated close.
func (s *LogStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *LogStream) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// StreamLogs opens a follow-mode log stream for a container, tailing the
// last tail lines first. The stream keeps running until the container
// stops, the context is cancelled, or Close is called.
func (c *Client) StreamLogs(ctx context.Context, id string, tail int) (*LogStream, error) {
	info, err := c.api.ContainerInspect(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inspect for logs: %w", err)
	}
	tty := info.Config != nil && info.Config.Tty

	streamCtx, cancel := context.WithCancel(ctx)
	opts := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Timestamps: true,
	}
	if tail > 0 {
		opts.Tail = strconv.Itoa(tail)
	}
	rc, err := c.api.ContainerLogs(streamCtx, id, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open log stream: %w", err)
	}

	// A cancelled context must unblock the reader immediately, not on the
	// next line.
	go func() {
		<-streamCtx.Done()
		rc.Close()
	}()

	// Without a TTY the daemon multiplexes stdout/stderr into one frame
	// stream; demux both onto a single pipe.
	var src io.Reader = rc
	if !tty {
		pr, pw := io.Pipe()
		go func() {
			_, err := stdcopy.StdCopy(pw, pw, rc)
			pw.CloseWithError(err)
		}()
		src = pr
	}

	lines := make(chan LogLine, streamChannelDepth)
	s := NewLogStream(lines, cancel)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(src)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- parseLogLine(scanner.Text()):
			case <-streamCtx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && streamCtx.Err() == nil {
			s.setErr(err)
		}
	}()

	return s, nil
}

// parseLogLine splits the daemon's "RFC3339Nano text" form. Lines without
// a parseable timestamp are kept whole with a zero When.
func parseLogLine(raw string) LogLine {
	ts, rest, ok := strings.Cut(raw, " ")
	if ok {
		if when, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return LogLine{When: when, Text: rest}
		}
	}
	return LogLine{Text: raw}
}
