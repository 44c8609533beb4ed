package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	_, failed := tracer.Start(context.Background(), "failed")
	SetSpanAttributes(failed, attribute.String(AttrIssuer, "https://idp.example.org"))
	RecordError(failed, errors.New("boom"))
	failed.End()

	_, ok := tracer.Start(context.Background(), "ok")
	SetSpanSuccess(ok)
	ok.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	assert.Contains(t, spans[0].Attributes(), attribute.String(AttrIssuer, "https://idp.example.org"))
	require.Len(t, spans[0].Events(), 1)

	assert.Equal(t, codes.Ok, spans[1].Status().Code)
}

func TestSpanHelpersNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(nil, errors.New("x"))
		SetSpanSuccess(nil)
		SetSpanAttributes(nil, attribute.Bool("k", true))
	})
}
