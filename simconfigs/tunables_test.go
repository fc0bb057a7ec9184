package simconfigs

import (
	"testing"
	"time"

	"github.com/picosim/picosim/configs"
	"github.com/picosim/picosim/modes"
	"github.com/reusee/dscope"
)

func TestDefaults(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		flushGrace FlushGrace,
		yieldInterval YieldInterval,
		listenAddr ListenAddr,
	) {
		if time.Duration(flushGrace) != 100*time.Millisecond {
			t.Fatalf("got %v", time.Duration(flushGrace))
		}
		if time.Duration(yieldInterval) != 20*time.Millisecond {
			t.Fatalf("got %v", time.Duration(yieldInterval))
		}
		if listenAddr == "" {
			t.Fatal("empty listen addr")
		}
	})
}

func TestConfigured(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		dscope.Provide(configs.NewLoader([]string{"testdata/custom.cue"}, schema)),
	).Call(func(
		flushGrace FlushGrace,
		yieldInterval YieldInterval,
	) {
		if time.Duration(flushGrace) != 250*time.Millisecond {
			t.Fatalf("got %v", time.Duration(flushGrace))
		}
		if time.Duration(yieldInterval) != 5*time.Millisecond {
			t.Fatalf("got %v", time.Duration(yieldInterval))
		}
	})
}
