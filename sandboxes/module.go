package sandboxes

import (
	"time"

	"github.com/picosim/picosim/bridges"
	"github.com/picosim/picosim/logs"
	"github.com/picosim/picosim/pins"
	"github.com/picosim/picosim/simconfigs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Pins    pins.Module
	Logs    logs.Module
	Configs simconfigs.Module
}

func (Module) Host(
	logger logs.Logger,
	store *pins.Store,
	flushGrace simconfigs.FlushGrace,
	yieldInterval simconfigs.YieldInterval,
) *Host {
	return NewHost(
		logger,
		store,
		time.Duration(flushGrace),
		time.Duration(yieldInterval),
	)
}

func (Module) Sandbox(
	host *Host,
) bridges.Sandbox {
	return host
}
