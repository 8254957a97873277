package goroutine

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/stripegate/internal/shared/logger"
)

func TestGo(t *testing.T) {
	log := logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))

	t.Run("returns result", func(t *testing.T) {
		want := errors.New("closed")
		err := <-Go(log, "worker", func() error { return want })
		assert.Same(t, want, err)
	})

	t.Run("recovers panic", func(t *testing.T) {
		err := <-Go(log, "worker", func() error { panic("boom") })
		assert.EqualError(t, err, "worker panicked: boom")
	})
}
