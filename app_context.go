package main

import "context"

func (a *App) setRuntimeContext(ctx context.Context) {
	a.ctxMu.Lock()
	a.ctx = ctx
	a.ctxMu.Unlock()
}

func (a *App) runtimeContext() context.Context {
	a.ctxMu.RLock()
	ctx := a.ctx
	a.ctxMu.RUnlock()
	return ctx
}

// operationContext is used for host calls made from bound methods, which
// carry no context of their own.
func (a *App) operationContext() context.Context {
	if ctx := a.runtimeContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
