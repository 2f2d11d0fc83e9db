package dockerd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/containerd/errdefs"
)

func TestIsNotFound(t *testing.T) {
	wrapped := fmt.Errorf("inspect web_a: %w", errdefs.ErrNotFound)
	if !IsNotFound(wrapped) {
		t.Fatal("wrapped not-found error not recognized")
	}
	if IsNotFound(errors.New("boom")) {
		t.Fatal("arbitrary error classified as not-found")
	}
}

func TestIsUnreachable(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "unix", Err: errors.New("connect: connection refused")}
	if !IsUnreachable(dial) {
		t.Fatal("dial failure not classified as unreachable")
	}
	if !IsUnreachable(context.DeadlineExceeded) {
		t.Fatal("deadline not classified as unreachable")
	}
	if IsUnreachable(nil) {
		t.Fatal("nil classified as unreachable")
	}
	if IsUnreachable(errors.New("permission denied")) {
		t.Fatal("daemon rejection classified as unreachable")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"permission", errors.New("permission denied while trying to connect"), "permission denied (is your user in the docker group?)"},
		{"timeout", context.DeadlineExceeded, "daemon not responding (timeout)"},
		{"dial failure", &net.OpError{Op: "dial", Net: "unix", Err: errors.New("connect: connection refused")}, "daemon unreachable (is it running?)"},
		{"other", errors.New("boom"), "daemon error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err, false); got != tt.want {
				t.Errorf("Describe = %q, want %q", got, tt.want)
			}
		})
	}

	if got := Describe(errors.New("boom"), true); got != "boom" {
		t.Errorf("detailed Describe = %q, want raw error text", got)
	}
}
