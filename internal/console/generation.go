package console

import "context"

// generation hands out monotonically increasing tokens for in-flight work.
// Starting a new generation cancels the context of the previous one, so a
// superseded request stops early and its late result can be recognised and
// dropped. Callers hold their controller's mutex around every method.
type generation struct {
	current uint64
	cancel  context.CancelFunc
}

func (g *generation) begin(ctx context.Context) (context.Context, uint64) {
	if g.cancel != nil {
		g.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	g.current++
	g.cancel = cancel
	return runCtx, g.current
}

// finish reports whether token is still the latest and releases its context.
func (g *generation) finish(token uint64) bool {
	if token != g.current {
		return false
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	return true
}
