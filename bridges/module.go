package bridges

import (
	"github.com/picosim/picosim/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

func (Module) Server(
	logger logs.Logger,
	sandbox Sandbox,
) *Server {
	return NewServer(logger, sandbox)
}
