package machines

import (
	"fmt"

	"go.starlark.net/starlark"
)

// pinClass is the Pin constructor, callable from guest code as
// Pin(id, mode) and carrying the mode and pull constants as attributes.
type pinClass struct {
	config Config
}

var (
	_ starlark.Callable = (*pinClass)(nil)
	_ starlark.HasAttrs = (*pinClass)(nil)
)

func (c *pinClass) String() string        { return "<class 'Pin'>" }
func (c *pinClass) Type() string          { return "type" }
func (c *pinClass) Freeze()               {}
func (c *pinClass) Truth() starlark.Bool  { return starlark.True }
func (c *pinClass) Hash() (uint32, error) { return starlark.String("Pin").Hash() }
func (c *pinClass) Name() string          { return "Pin" }

var pinClassAttrNames = []string{"IN", "OUT", "PULL_DOWN", "PULL_UP"}

func (c *pinClass) Attr(name string) (starlark.Value, error) {
	switch name {
	case "IN":
		return starlark.MakeInt(ModeIn), nil
	case "OUT":
		return starlark.MakeInt(ModeOut), nil
	case "PULL_DOWN":
		return starlark.MakeInt(PullDown), nil
	case "PULL_UP":
		return starlark.MakeInt(PullUp), nil
	}
	return nil, nil
}

func (c *pinClass) AttrNames() []string {
	return pinClassAttrNames
}

func (c *pinClass) CallInternal(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id int
	mode := ModeIn
	var pull starlark.Value
	if err := starlark.UnpackArgs("Pin", args, kwargs,
		"id", &id,
		"mode?", &mode,
		"pull?", &pull,
	); err != nil {
		return nil, err
	}
	// pull is accepted and ignored; pin ids are not validated, the register
	// file is permissive about both grounds and out-of-range ids
	return &pinValue{
		class: c,
		id:    id,
		mode:  mode,
	}, nil
}

// pinValue is one constructed pin. The pin itself is stateless; levels live
// in the register file.
type pinValue struct {
	class *pinClass
	id    int
	mode  int
}

var (
	_ starlark.Value    = (*pinValue)(nil)
	_ starlark.HasAttrs = (*pinValue)(nil)
)

func (p *pinValue) String() string {
	mode := "IN"
	if p.mode == ModeOut {
		mode = "OUT"
	}
	return fmt.Sprintf("Pin(%d, mode=%s)", p.id, mode)
}

func (p *pinValue) Type() string          { return "Pin" }
func (p *pinValue) Freeze()               {}
func (p *pinValue) Truth() starlark.Bool  { return starlark.True }
func (p *pinValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: Pin") }

var pinAttrNames = []string{"id", "mode", "off", "on", "toggle", "value"}

func (p *pinValue) Attr(name string) (starlark.Value, error) {
	switch name {

	case "id":
		return starlark.MakeInt(p.id), nil

	case "mode":
		return starlark.MakeInt(p.mode), nil

	case "value":
		return starlark.NewBuiltin("value", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var x starlark.Value
			if err := starlark.UnpackArgs("value", args, kwargs, "x?", &x); err != nil {
				return nil, err
			}
			if x == nil {
				return starlark.MakeInt(p.read()), nil
			}
			level, err := levelOf(x)
			if err != nil {
				return nil, err
			}
			p.write(level)
			return starlark.None, nil
		}), nil

	case "on":
		return starlark.NewBuiltin("on", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs("on", args, kwargs); err != nil {
				return nil, err
			}
			p.write(1)
			return starlark.None, nil
		}), nil

	case "off":
		return starlark.NewBuiltin("off", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs("off", args, kwargs); err != nil {
				return nil, err
			}
			p.write(0)
			return starlark.None, nil
		}), nil

	case "toggle":
		return starlark.NewBuiltin("toggle", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs("toggle", args, kwargs); err != nil {
				return nil, err
			}
			p.write(1 - p.class.config.Registers.ReadOutput(p.id))
			return starlark.None, nil
		}), nil

	}
	return nil, nil
}

func (p *pinValue) AttrNames() []string {
	return pinAttrNames
}

// read pulls the register half the declared mode makes authoritative for
// reads: input for IN pins, output for OUT pins.
func (p *pinValue) read() int {
	if p.mode == ModeIn {
		return p.class.config.Registers.ReadInput(p.id)
	}
	return p.class.config.Registers.ReadOutput(p.id)
}

// write stores into the script-side register and publishes exactly one
// event, synchronously, whatever the declared mode. Writing an IN pin is
// permitted; the value lands in the output register, so IN reads still
// reflect only host-side writes.
func (p *pinValue) write(level int) {
	p.class.config.Registers.Write(p.id, level)
	p.class.config.Publish(p.id, level)
}

func levelOf(v starlark.Value) (int, error) {
	switch v := v.(type) {
	case starlark.Bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case starlark.Int:
		n, err := starlark.AsInt32(v)
		if err != nil {
			return 0, err
		}
		if n != 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("value: want int or bool, got %s", v.Type())
}
