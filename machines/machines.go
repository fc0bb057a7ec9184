// Package machines is the hardware shim: the only surface a guest script
// sees for the simulated board. It exposes a MicroPython-flavored machine
// module backed by the pin register store.
package machines

import (
	"context"
	"errors"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// FileOptions is the guest dialect: Python syntax plus the control flow
// firmware-style scripts lean on.
var FileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Pin mode and pull constants, mirroring the firmware API. The pull
// constants are accepted for compatibility; the simulation ignores them.
const (
	ModeIn   = 0
	ModeOut  = 1
	PullDown = 1
	PullUp   = 2
)

// ErrInterrupted reports a cooperative cancellation observed at a
// suspension point. It is not a guest error; the host swallows it.
var ErrInterrupted = errors.New("interrupted")

// Registers is the register file the shim reads and writes. Guest writes
// always land in the output register, whatever the declared pin mode;
// guest reads of IN pins pull the input register.
type Registers interface {
	ReadInput(pin int) int
	ReadOutput(pin int) int
	Write(pin, value int)
}

// PublishFunc receives every guest pin write, synchronously, before the
// write call returns to the guest.
type PublishFunc func(pin, value int)

type Config struct {
	Registers    Registers
	Publish      PublishFunc
	IdleInterval time.Duration
}

// DefaultIdleInterval is how long machine.idle suspends the guest when not
// configured otherwise.
const DefaultIdleInterval = 20 * time.Millisecond

// Predeclared builds the guest environment: the machine and time modules,
// with Pin also bound at top level.
func Predeclared(config Config) starlark.StringDict {
	if config.Publish == nil {
		config.Publish = func(pin, value int) {}
	}
	if config.IdleInterval <= 0 {
		config.IdleInterval = DefaultIdleInterval
	}

	class := &pinClass{
		config: config,
	}

	machine := &starlarkstruct.Module{
		Name: "machine",
		Members: starlark.StringDict{
			"Pin": class,
			"idle": starlark.NewBuiltin("idle", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackArgs("idle", args, kwargs); err != nil {
					return nil, err
				}
				return starlark.None, suspend(thread, config.IdleInterval)
			}),
		},
	}

	return starlark.StringDict{
		"machine": machine,
		"Pin":     class,
		"time":    timeModule(),
	}
}

// LocalContext is the starlark thread-local key holding the session
// context. Suspension points observe it for cancellation.
const LocalContext = "picosim.context"

func SetContext(thread *starlark.Thread, ctx context.Context) {
	thread.SetLocal(LocalContext, ctx)
}

func threadContext(thread *starlark.Thread) context.Context {
	if v := thread.Local(LocalContext); v != nil {
		return v.(context.Context)
	}
	return context.Background()
}

// suspend blocks the guest for d, returning ErrInterrupted if the session
// context is cancelled first. This is the only place guest execution can be
// interrupted; straight-line guest code runs to completion.
func suspend(thread *starlark.Thread, d time.Duration) error {
	ctx := threadContext(thread)
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ErrInterrupted
		default:
			return nil
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ErrInterrupted
	}
}
