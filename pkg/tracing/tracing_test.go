package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan(t *testing.T) {
	t.Run("should be a no-op without a tracer", func(t *testing.T) {
		SetTracer(nil)

		ctx, span := StartSpan(context.Background(), "noop")
		defer span.End()

		assert.Nil(t, GetActiveSpan(ctx))
		assert.Empty(t, GetTraceID(ctx))
	})

	t.Run("should record spans once a tracer is set", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		provider := NewProvider("bramble-test", nil)
		provider.RegisterSpanProcessor(recorder)
		SetTracer(provider.Tracer("test"))
		defer SetTracer(nil)

		ctx, span := StartSpan(context.Background(), "generate")
		assert.NotEmpty(t, GetTraceID(ctx))
		assert.NotEmpty(t, GetSpanID(ctx))

		RecordError(span, errors.New("boom"))
		span.End()

		ended := recorder.Ended()
		require.Len(t, ended, 1)
		assert.Equal(t, "generate", ended[0].Name())
		assert.Equal(t, codes.Error, ended[0].Status().Code)
	})
}
