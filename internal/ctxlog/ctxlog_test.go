package ctxlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, false)
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))

	FromContext(ctx).Warn("station skipped", "path", "a.json")
	FromContext(ctx).Debug("hidden")
	assert.Contains(t, buf.String(), "station skipped")
	assert.Contains(t, buf.String(), "path=a.json")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFromContext_WithoutLogger(t *testing.T) {
	t.Parallel()

	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
	logger.Error("goes nowhere")
}

func TestNew_Debug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true).Debug("walking station", "id", "a")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "id=a")
}
