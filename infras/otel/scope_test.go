package otel_test

import (
	"context"
	"errors"
	"testing"

	"tourdesk/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(fn func(scope otel.Scope)) trace.ReadOnlySpan {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	return recorder.Ended()[0]
}

func TestScope_TraceIfErrorSeesNamedReturn(t *testing.T) {
	var span trace.ReadOnlySpan

	archive := func() (err error) {
		span = record(func(scope otel.Scope) {
			defer scope.TraceIfError(&err)

			err = errors.New("upload failed")
		})

		return err
	}

	require.Error(t, archive())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "upload failed", span.Status().Description)
}

func TestScope_NilErrorLeavesStatusUnset(t *testing.T) {
	span := record(func(scope otel.Scope) {
		var err error

		scope.TraceIfError(&err)
		scope.TraceError(nil)
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"document.reference": "INV-250101-ABC123",
			"document.items":     3,
			"document.total":     64500.0,
			"document.download":  true,
		})
	})

	got := map[string]any{}
	for _, kv := range span.Attributes() {
		got[string(kv.Key)] = kv.Value.AsInterface()
	}

	assert.Equal(t, "INV-250101-ABC123", got["document.reference"])
	assert.Equal(t, int64(3), got["document.items"])
	assert.InDelta(t, 64500.0, got["document.total"], 0.001)
	assert.Equal(t, true, got["document.download"])
}
