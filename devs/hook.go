package devs

import "log"

// A HookPos names a point in the processor lifecycle at which observers may
// be invoked.
type HookPos struct {
	Name string
}

// HookCtx carries the information passed to an observer when it fires.
type HookCtx struct {
	Domain  Hookable
	Pos     *HookPos
	Time    TimePoint
	Elapsed Duration
	Payload any
}

// Hookable is anything that accepts observers: processors, models, and
// output ports.
type Hookable interface {
	AcceptHook(hook Hook)
}

// HookPosInitialize marks a processor's state initialization.
var HookPosInitialize = &HookPos{Name: "Initialize"}

// HookPosOutput marks a processor's output collection.
var HookPosOutput = &HookPos{Name: "Output"}

// HookPosInternalTransition marks an internal transition.
var HookPosInternalTransition = &HookPos{Name: "InternalTransition"}

// HookPosExternalTransition marks an external transition.
var HookPosExternalTransition = &HookPos{Name: "ExternalTransition"}

// HookPosConfluentTransition marks a confluent transition.
var HookPosConfluentTransition = &HookPos{Name: "ConfluentTransition"}

// HookPosPortNotify marks delivery of a value through an observed port.
var HookPosPortNotify = &HookPos{Name: "PortNotify"}

// A Hook is a short piece of program invoked by a Hookable at one of its
// observed positions.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func invokes f.
func (f HookFunc) Func(ctx HookCtx) { f(ctx) }

// HookableBase implements Hookable and invokes its hooks with panic
// isolation: a hook that raises is logged and detached, and every other
// hook still fires for the same and later events.
type HookableBase struct {
	hooks []Hook
}

// NewHookableBase returns an empty HookableBase.
func NewHookableBase() *HookableBase {
	return &HookableBase{hooks: make([]Hook, 0)}
}

// AcceptHook registers hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// InvokeHook runs every registered hook with ctx, detaching any hook that
// panics so the simulation continues.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	live := h.hooks[:0]

	for _, hook := range h.hooks {
		if invokeHookSafely(hook, ctx) {
			live = append(live, hook)
		}
	}

	h.hooks = live
}

func invokeHookSafely(hook Hook, ctx HookCtx) (survived bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("devs: observer at %s panicked and was detached: %v", ctx.Pos.Name, r)
			survived = false
		}
	}()

	hook.Func(ctx)

	return true
}
