package main

import (
	"context"
	"testing"

	"vibe/internal/hotkeys"
)

type ctxKey struct{}

func TestOperationContext(t *testing.T) {
	app := newAppWithHost(hotkeys.NewFakeHost())
	if app.runtimeContext() != nil {
		t.Fatal("runtimeContext() before startup should be nil")
	}
	if app.operationContext() == nil {
		t.Fatal("operationContext() must fall back to a non-nil context")
	}

	ctx := context.WithValue(context.Background(), ctxKey{}, "runtime")
	app.setRuntimeContext(ctx)
	if got := app.operationContext().Value(ctxKey{}); got != "runtime" {
		t.Fatalf("operationContext() value = %v, want runtime context", got)
	}
}
