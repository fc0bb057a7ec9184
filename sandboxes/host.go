// Package sandboxes runs guest scripts in an isolated, interruptible
// execution host. The host owns the guest interpreter and the pin register
// store; the application talks to it only through bridge messages, so a
// guest script spinning forever can never block the application side.
package sandboxes

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"time"

	"github.com/picosim/picosim/bridges"
	"github.com/picosim/picosim/logs"
	"github.com/picosim/picosim/machines"
	"github.com/picosim/picosim/pins"
	"github.com/picosim/picosim/pubsub"
	"github.com/picosim/picosim/rewrites"
	"go.starlark.net/starlark"
)

// State is the host lifecycle. The bridge only reports loading, ready and
// error; running is observable in process through States().
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateRunning       State = "running"
	StateError         State = "error"
)

//go:embed prelude.py
var preludeSource string

type Host struct {
	logger        logs.Logger
	store         *pins.Store
	flushGrace    time.Duration
	yieldInterval time.Duration

	states *pubsub.Value[State]

	inbox  chan bridges.Message
	events chan bridges.Message
	runs   chan *Session

	ctx         context.Context
	predeclared starlark.StringDict
	current     *pubsub.Value[*Session]
}

func NewHost(
	logger logs.Logger,
	store *pins.Store,
	flushGrace time.Duration,
	yieldInterval time.Duration,
) *Host {
	return &Host{
		logger:        logger,
		store:         store,
		flushGrace:    flushGrace,
		yieldInterval: yieldInterval,
		states:        pubsub.NewValue(StateUninitialized),
		inbox:         make(chan bridges.Message, 64),
		events:        make(chan bridges.Message, 1024),
		runs:          make(chan *Session, 16),
		current:       pubsub.NewValue[*Session](nil),
	}
}

// Start launches the host goroutines: a dispatch loop draining the inbox
// and an executor running sessions one at a time. Returns after launching;
// the host stops when ctx is cancelled.
func (h *Host) Start(ctx context.Context) {
	h.ctx = ctx
	go h.dispatch(ctx)
	go h.execute(ctx)
}

// Send delivers an application-to-host message. Implements bridges.Sandbox.
func (h *Host) Send(msg bridges.Message) {
	select {
	case h.inbox <- msg:
	case <-h.ctx.Done():
	}
}

// Events is the host-to-application message stream. Implements
// bridges.Sandbox.
func (h *Host) Events() <-chan bridges.Message {
	return h.events
}

// States exposes the lifecycle for in-process observers.
func (h *Host) States() *pubsub.Value[State] {
	return h.states
}

// Store exposes the pin register store for in-process observers. The
// presentation layer must go through the bridge instead.
func (h *Host) Store() *pins.Store {
	return h.store
}

// Session returns the current (or last) run session.
func (h *Host) Session() *Session {
	return h.current.Get()
}

func (h *Host) emit(msg bridges.Message) {
	select {
	case h.events <- msg:
	case <-h.ctx.Done():
	}
}

func (h *Host) dispatch(ctx context.Context) {
	for {
		select {

		case <-ctx.Done():
			return

		case msg := <-h.inbox:
			switch msg.Type {

			case bridges.KindInit:
				h.initialize(ctx)

			case bridges.KindRunCode:
				h.enqueueRun(ctx, msg.Code)

			case bridges.KindStop:
				// cancel whatever is active; acknowledging a stop with
				// nothing running is not an error
				if session := h.current.Get(); session != nil {
					session.Cancel()
				}
				h.emit(bridges.Stopped())

			case bridges.KindInputUpdate:
				if msg.Pin == nil || msg.Value == nil {
					h.logger.Warn("input update without pin or value")
					continue
				}
				// host-side register half; takes effect on the next guest
				// read, no coordination with a run in flight needed
				h.store.WriteInput(*msg.Pin, *msg.Value)

			default:
				h.logger.Warn("unexpected message",
					"type", msg.Type,
				)
			}
		}
	}
}

// initialize is idempotent: already loading or initialized means nothing to
// do. A previous init failure is terminal until a fresh INIT retries it.
func (h *Host) initialize(ctx context.Context) bool {
	switch h.states.Get() {
	case StateLoading, StateReady, StateRunning:
		return true
	}

	h.states.Set(StateLoading)
	h.emit(bridges.StatusUpdate(bridges.StatusLoading))

	predeclared := machines.Predeclared(machines.Config{
		Registers: h.store,
		Publish: func(pin, value int) {
			h.emit(bridges.PinUpdate(pin, value))
		},
		IdleInterval: h.yieldInterval,
	})

	// the bootstrap prelude provides board aliases; its globals join the
	// predeclared environment of every later run
	thread := &starlark.Thread{
		Name: "bootstrap",
	}
	globals, err := starlark.ExecFileOptions(machines.FileOptions, thread, "prelude.py", preludeSource, predeclared)
	if err != nil {
		h.logger.Error("interpreter bootstrap failed",
			"error", err,
		)
		h.states.Set(StateError)
		h.emit(bridges.Error(err.Error()))
		h.emit(bridges.StatusUpdate(bridges.StatusError))
		return false
	}
	for name, value := range globals {
		if strings.HasPrefix(name, "_") {
			continue
		}
		predeclared[name] = value
	}

	h.predeclared = predeclared
	h.states.Set(StateReady)
	h.emit(bridges.StatusUpdate(bridges.StatusReady))
	h.logger.Info("interpreter ready")
	return true
}

func (h *Host) enqueueRun(ctx context.Context, code string) {
	switch h.states.Get() {
	case StateError:
		// suppressed until a fresh INIT succeeds
		h.logger.Warn("run ignored while in error state")
		return
	case StateUninitialized:
		if !h.initialize(ctx) {
			return
		}
	}

	session := newSession(ctx, code)
	// the new session replaces the previous one
	if prev := h.current.Get(); prev != nil {
		prev.Cancel()
	}
	h.current.Set(session)

	select {
	case h.runs <- session:
	case <-ctx.Done():
	}
}

func (h *Host) execute(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case session := <-h.runs:
			h.runSession(ctx, session)
		}
	}
}

func (h *Host) runSession(ctx context.Context, session *Session) {
	sctx := logs.WithSession(ctx, logs.Session(session.ID.String()))
	h.states.Set(StateRunning)
	defer func() {
		if h.states.Get() == StateRunning {
			h.states.Set(StateReady)
		}
	}()

	session.Rewritten = rewrites.InjectYields(session.Source)

	thread := &starlark.Thread{
		Name: session.ID.String(),
		Print: func(_ *starlark.Thread, msg string) {
			session.appendOutput(msg + "\n")
		},
	}
	machines.SetContext(thread, session.ctx)

	h.logger.DebugContext(sctx, "run",
		"bytes", len(session.Rewritten),
	)
	_, err := starlark.ExecFileOptions(machines.FileOptions, thread, "main.py", session.Rewritten, h.predeclared)

	// let trailing output settle before collecting; text arriving after
	// the window is dropped
	time.Sleep(h.flushGrace)

	h.emit(bridges.Output(session.Output()))

	switch {

	case err == nil:
		session.setStatus(SessionCompleted)

	case errors.Is(err, machines.ErrInterrupted):
		// a deliberate stop is not an error
		session.setStatus(SessionStopped)
		h.logger.InfoContext(sctx, "run stopped")

	default:
		session.setStatus(SessionErrored)
		var evalErr *starlark.EvalError
		msg := err.Error()
		if errors.As(err, &evalErr) {
			msg = evalErr.Backtrace()
		}
		h.logger.InfoContext(sctx, "run errored",
			"error", err,
		)
		h.emit(bridges.Error(msg))
	}

	h.emit(bridges.ExecutionComplete())
}
