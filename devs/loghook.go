package devs

import "log"

// LogHook is a Hook that records every context it is invoked with through a
// standard logger, for tracing a simulation's transition history during
// development.
type LogHook struct {
	*log.Logger
}

// NewLogHook returns a LogHook writing through logger.
func NewLogHook(logger *log.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Func implements Hook.
func (h *LogHook) Func(ctx HookCtx) {
	h.Printf("t=%s elapsed=%s pos=%s payload=%v",
		ctx.Time, ctx.Elapsed, ctx.Pos.Name, ctx.Payload)
}
