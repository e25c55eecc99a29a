package repository

import (
	"context"
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbecker/reloquiz/internal/quiz"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestWrapTransientClassifiesConnectivityErrors(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"net timeout", timeoutError{}, true},
		{"deadline", context.DeadlineExceeded, true},
		{"conn reset", syscall.ECONNRESET, true},
		{"conn refused", syscall.ECONNREFUSED, true},
		{"broken pipe", syscall.EPIPE, true},
		{"wrapped reset", errors.Join(errors.New("exec"), syscall.ECONNRESET), true},
		{"constraint violation", errors.New("duplicate key value"), false},
	}
	for _, tc := range cases {
		wrapped := wrapTransient(tc.err)
		if tc.err == nil {
			assert.NoError(t, wrapped, tc.name)
			continue
		}
		assert.Equal(t, tc.transient, quiz.IsTransient(wrapped), tc.name)
		assert.ErrorIs(t, wrapped, tc.err, tc.name)
	}
}
