package services_test

import (
	"context"
	"testing"

	"collate/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithDocument(ctx, "GL_0001_1_1")
	ctx = services.WithStage(ctx, "reconcile")
	ctx = services.WithRunID(ctx, "run-123")

	if name, ok := services.DocumentFromContext(ctx); !ok || name != "GL_0001_1_1" {
		t.Fatalf("unexpected document: %v %v", name, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "reconcile" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RunIDFromContext(ctx); !ok || rid != "run-123" {
		t.Fatalf("unexpected run id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithDocument(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.DocumentFromContext(ctx); ok {
		t.Fatal("expected no document value")
	}
}
