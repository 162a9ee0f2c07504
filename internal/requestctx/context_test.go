package requestctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoggerDefaultsToNoop(t *testing.T) {
	assert.Same(t, NoopLogger(), Logger(context.Background()))
}

func TestLoggerRoundTrip(t *testing.T) {
	logger := zap.NewExample()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, Logger(ctx))
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
	ctx := WithTrace(context.Background(), TraceInfo{TraceID: "abc", SpanID: "def"})
	assert.Equal(t, "abc", TraceID(ctx))
}
