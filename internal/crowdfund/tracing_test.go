package crowdfund

import (
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"fundflow/internal/adapter/state"
	"fundflow/internal/domain"
)

func TestOperationsRecordSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	svc := NewService(state.NewMemory(), ContextAuthenticator{}, WithTracerProvider(tp))

	id, err := svc.CreateCampaign(as(alice), "t", "d", 10)
	if err != nil {
		t.Fatalf("CreateCampaign() unexpected error: %v", err)
	}
	if _, err := svc.Donate(as(bob), id, 0); err != domain.ErrInvalidAmount {
		t.Fatalf("Donate() error = %v, want ErrInvalidAmount", err)
	}

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	if spans[0].Name() != "crowdfund.CreateCampaign" || spans[0].Status().Code == codes.Error {
		t.Fatalf("first span = %s status %v", spans[0].Name(), spans[0].Status())
	}
	if spans[1].Name() != "crowdfund.Donate" || spans[1].Status().Code != codes.Error {
		t.Fatalf("second span = %s status %v", spans[1].Name(), spans[1].Status())
	}
}
