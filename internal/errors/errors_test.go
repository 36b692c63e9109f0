package errors

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "wrapped deadline", err: Wrap(context.DeadlineExceeded, "directions"), want: true},
		{name: "net timeout", err: fmt.Errorf("get: %w", timeoutErr{}), want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "plain", err: New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTimeout(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	base := New("base")
	wrapped := Wrapf(base, "load %s", "doc.csv")

	assert.True(t, Is(wrapped, base))
	assert.Equal(t, "load doc.csv: base", wrapped.Error())
}
