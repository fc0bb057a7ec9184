package cmds

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).Desc("print this usage"))
	return ret
}

func (e *Executor) Define(name string, command *Command) {
	if _, ok := e.commands[name]; ok {
		panic(fmt.Errorf("duplicated command %s", name))
	}
	e.commands[name] = command
}

// Execute consumes args left to right: each token names a command, whose
// parameters are parsed from the tokens that follow.
func (e *Executor) Execute(args []string) error {
	for len(args) > 0 {

		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := e.commands[name]
		if !ok {
			return fmt.Errorf("unknown command: %s", name)
		}

		fnType := command.Func.Type()
		callArgs := make([]reflect.Value, 0, fnType.NumIn())
		for i := 0; i < fnType.NumIn(); i++ {
			if len(args) == 0 {
				return fmt.Errorf("%s: expecting argument, got nothing", name)
			}
			value, err := parseArg(fnType.In(i), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			callArgs = append(callArgs, value)
			args = args[1:]
		}

		rets := command.Func.Call(callArgs)
		if len(rets) > 0 {
			if err, ok := rets[0].Interface().(error); ok && err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Executor) MustExecute(args []string) {
	if err := e.Execute(args); err != nil {
		panic(err)
	}
}

func (e *Executor) PrintUsage() {
	names := slices.Sorted(maps.Keys(e.commands))
	for _, name := range names {
		command := e.commands[name]
		if command.Description != "" {
			fmt.Printf("%s\n\t%s\n", name, command.Description)
		} else {
			fmt.Printf("%s\n", name)
		}
	}
}

func parseArg(t reflect.Type, arg string) (reflect.Value, error) {
	var ret reflect.Value
	switch t.Kind() {

	case reflect.String:
		ret = reflect.ValueOf(arg)

	case reflect.Int:
		i, err := strconv.Atoi(arg)
		if err != nil {
			return ret, fmt.Errorf("bad integer: %q", arg)
		}
		ret = reflect.ValueOf(i)

	case reflect.Int64:
		i, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("bad integer: %q", arg)
		}
		ret = reflect.ValueOf(i)

	case reflect.Float64:
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return ret, fmt.Errorf("bad number: %q", arg)
		}
		ret = reflect.ValueOf(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(arg)
		if err != nil {
			return ret, fmt.Errorf("bad boolean: %q", arg)
		}
		ret = reflect.ValueOf(b)

	default:
		return ret, fmt.Errorf("unsupported argument type: %v", t)
	}
	return ret.Convert(t), nil
}
