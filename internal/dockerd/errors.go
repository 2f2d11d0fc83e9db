package dockerd

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/client"
)

// IsNotFound reports whether err means the container vanished between the
// daemon telling us about it and us acting on it.
func IsNotFound(err error) bool {
	return errdefs.IsNotFound(err)
}

// IsUnreachable reports whether err is a transport-level failure talking to
// the daemon, as opposed to the daemon rejecting a request.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if client.IsErrConnectionFailed(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Describe condenses a daemon error into a short, human-readable cause for
// the header banner. Detailed=true returns the full error text instead.
func Describe(err error, detailed bool) string {
	if err == nil {
		return ""
	}
	if detailed {
		return err.Error()
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "permission denied"):
		return "permission denied (is your user in the docker group?)"
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(msg, "timeout"):
		return "daemon not responding (timeout)"
	case IsUnreachable(err),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such file or directory"):
		return "daemon unreachable (is it running?)"
	default:
		return "daemon error"
	}
}
