package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"stackwatch/internal/dockerd"
	"stackwatch/internal/logbuf"
)

// logSession owns one container's live log stream: a pump goroutine moves
// lines from the stream into a ring buffer and pokes the UI through a
// coalesced notification channel, so a chatty container wakes the renderer
// once per batch instead of once per line.
type logSession struct {
	id   string
	name string
	ring *logbuf.Ring

	stream  *dockerd.LogStream
	updates chan struct{} // capacity 1, coalesced
	done    chan struct{} // closed when the stream ends on its own
	endErr  error         // set before done is closed
}

// startLogSession opens a follow stream for the container and begins pumping
// lines into a fresh ring buffer.
func startLogSession(ctx context.Context, daemon dockerd.Daemon, c dockerd.Container, tail, capacity int) (*logSession, error) {
	stream, err := daemon.StreamLogs(ctx, c.ID, tail)
	if err != nil {
		return nil, err
	}
	s := &logSession{
		id:      c.ID,
		name:    c.Name,
		ring:    logbuf.New(capacity),
		stream:  stream,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

func (s *logSession) pump() {
	for line := range s.stream.C {
		s.ring.Append(line)
		select {
		case s.updates <- struct{}{}:
		default:
		}
	}
	s.endErr = s.stream.Err()
	close(s.done)
}

// stop cancels the stream. Safe to call more than once; the pump goroutine
// drains and exits on its own.
func (s *logSession) stop() {
	s.stream.Close()
}

// closeSession tears down the active session, if any. The pending attach is
// always invalidated, even when no session was installed yet.
func (m *Model) closeSession() {
	m.pendingLogID = ""
	if m.session == nil {
		return
	}
	m.session.stop()
	m.session = nil
}

// Messages

type logStartedMsg struct {
	session *logSession
	seq     int
}

type logStartFailedMsg struct {
	seq int
	err error
}

type logLinesMsg struct {
	id string
}

type logEndedMsg struct {
	id  string
	err error
}

// Commands

// startLogCmd opens the stream off the event loop; inspect plus attach can
// take a network round-trip each. seq ties the result back to the attach
// that requested it.
func startLogCmd(ctx context.Context, daemon dockerd.Daemon, c dockerd.Container, tail, capacity, seq int) tea.Cmd {
	return func() tea.Msg {
		s, err := startLogSession(ctx, daemon, c, tail, capacity)
		if err != nil {
			return logStartFailedMsg{seq: seq, err: err}
		}
		return logStartedMsg{session: s, seq: seq}
	}
}

// waitForLogCmd blocks until the session has new lines or its stream ends.
// The handler re-arms it after every delivery.
func waitForLogCmd(s *logSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.updates:
			return logLinesMsg{id: s.id}
		case <-s.done:
			return logEndedMsg{id: s.id, err: s.endErr}
		}
	}
}
