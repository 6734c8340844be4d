package devs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHookableBaseInvokesEveryHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewHookableBase()

	first := NewMockHook(ctrl)
	second := NewMockHook(ctrl)
	ctx := HookCtx{Pos: HookPosInternalTransition}

	first.EXPECT().Func(ctx)
	second.EXPECT().Func(ctx)

	h.AcceptHook(first)
	h.AcceptHook(second)
	h.InvokeHook(ctx)
}

// A hook that panics is logged and detached rather than being allowed to
// crash the simulation, and every other hook still fires for the event
// that triggered the panic and every later one.
func TestHookableBaseDetachesPanickingHook(t *testing.T) {
	h := NewHookableBase()

	calls := 0
	panicking := HookFunc(func(ctx HookCtx) { panic("boom") })
	survivor := HookFunc(func(ctx HookCtx) { calls++ })

	h.AcceptHook(panicking)
	h.AcceptHook(survivor)

	h.InvokeHook(HookCtx{Pos: HookPosOutput})
	assert.Equal(t, 1, calls)

	h.InvokeHook(HookCtx{Pos: HookPosOutput})
	assert.Equal(t, 2, calls)
}

func TestHookFuncAdaptsPlainFunction(t *testing.T) {
	called := false
	f := HookFunc(func(ctx HookCtx) { called = true })
	f.Func(HookCtx{})

	assert.True(t, called)
}
