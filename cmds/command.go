// Package cmds is a small reflective command-line processor. Flags and
// commands are the same thing: a name bound to a function whose parameters
// are parsed from the following arguments.
package cmds

import (
	"fmt"
	"reflect"
)

type Command struct {
	Func        reflect.Value
	Description string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

var errorType = reflect.TypeFor[error]()

// Func wraps fn as a command. fn may return nothing or a single error.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}
	switch n := fnValue.Type().NumOut(); {
	case n > 1:
		panic(fmt.Errorf("must return 0 or 1 value"))
	case n == 1 && fnValue.Type().Out(0) != errorType:
		panic(fmt.Errorf("must return error"))
	}

	return &Command{
		Func: fnValue,
	}
}
