package main

import (
	"github.com/picosim/picosim/bridges"
	"github.com/picosim/picosim/sandboxes"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Sandboxes sandboxes.Module
	Bridges   bridges.Module
}
