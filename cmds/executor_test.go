package cmds

import (
	"errors"
	"testing"
)

func TestExecutor(t *testing.T) {

	t.Run("flag with arguments", func(t *testing.T) {
		executor := NewExecutor()
		var name string
		var count int
		executor.Define("-set", Func(func(n string, c int) {
			name = n
			count = c
		}))
		if err := executor.Execute([]string{"-set", "led", "3"}); err != nil {
			t.Fatal(err)
		}
		if name != "led" || count != 3 {
			t.Fatalf("got %q %d", name, count)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		executor := NewExecutor()
		if err := executor.Execute([]string{"-nope"}); err == nil {
			t.Fatal("should error")
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		executor := NewExecutor()
		executor.Define("-n", Func(func(int) {}))
		if err := executor.Execute([]string{"-n"}); err == nil {
			t.Fatal("should error")
		}
	})

	t.Run("bad argument", func(t *testing.T) {
		executor := NewExecutor()
		executor.Define("-n", Func(func(int) {}))
		if err := executor.Execute([]string{"-n", "x"}); err == nil {
			t.Fatal("should error")
		}
	})

	t.Run("error return propagates", func(t *testing.T) {
		executor := NewExecutor()
		sentinel := errors.New("nope")
		executor.Define("-fail", Func(func() error {
			return sentinel
		}))
		if err := executor.Execute([]string{"-fail"}); !errors.Is(err, sentinel) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("duplicate definition panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("should panic")
			}
		}()
		executor := NewExecutor()
		executor.Define("-x", Func(func() {}))
		executor.Define("-x", Func(func() {}))
	})

}

func TestSwitch(t *testing.T) {
	executor := NewExecutor()
	var value bool
	executor.Define("-on", Func(func() {
		value = true
	}))
	executor.Define("!-on", Func(func() {
		value = false
	}))
	if err := executor.Execute([]string{"-on", "!-on", "-on"}); err != nil {
		t.Fatal(err)
	}
	if !value {
		t.Fatal()
	}
}
