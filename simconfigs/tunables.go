package simconfigs

import (
	"time"

	"github.com/picosim/picosim/cmds"
	"github.com/picosim/picosim/configs"
	"github.com/picosim/picosim/vars"
)

// FlushGrace is how long the host waits after a run finishes before
// collecting the output buffer, letting trailing output settle. Output
// produced after the window is dropped.
type FlushGrace time.Duration

var flushGraceFlag = cmds.Var[int]("-flush-grace-ms")

func (Module) FlushGrace(
	loader configs.Loader,
) FlushGrace {
	ms := vars.FirstNonZero(
		*flushGraceFlag,
		configs.First[int](loader, "flush_grace_ms"),
		100,
	)
	return FlushGrace(time.Duration(ms) * time.Millisecond)
}

// YieldInterval is how long an injected suspension point parks the guest.
// A responsiveness/throughput trade-off, not a real-time bound.
type YieldInterval time.Duration

var yieldIntervalFlag = cmds.Var[int]("-yield-interval-ms")

func (Module) YieldInterval(
	loader configs.Loader,
) YieldInterval {
	ms := vars.FirstNonZero(
		*yieldIntervalFlag,
		configs.First[int](loader, "yield_interval_ms"),
		20,
	)
	return YieldInterval(time.Duration(ms) * time.Millisecond)
}

// ListenAddr is where the bridge server listens in serve mode.
type ListenAddr string

var listenFlag = cmds.Var[string]("-listen")

func (Module) ListenAddr(
	loader configs.Loader,
) ListenAddr {
	return ListenAddr(vars.FirstNonZero(
		*listenFlag,
		configs.First[string](loader, "listen_addr"),
		"127.0.0.1:8372",
	))
}
