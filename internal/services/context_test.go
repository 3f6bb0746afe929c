package services_test

import (
	"context"
	"testing"

	"audiosplit/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "cut")
	ctx = services.WithSegment(ctx, 3)

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "cut" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if idx, ok := services.SegmentFromContext(ctx); !ok || idx != 3 {
		t.Fatalf("unexpected segment: %v %v", idx, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithSegment(ctx, 0)
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id")
	}
	if _, ok := services.SegmentFromContext(ctx); ok {
		t.Fatal("expected no segment")
	}
}
