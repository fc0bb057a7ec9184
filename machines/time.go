package machines

import (
	"fmt"
	"time"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

var ticksEpoch = time.Now()

// timeModule provides the subset of the firmware time API that scripts
// lean on. sleep and sleep_ms are suspension points: they observe session
// cancellation like machine.idle does.
func timeModule() *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "time",
		Members: starlark.StringDict{

			"sleep": starlark.NewBuiltin("sleep", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var seconds starlark.Value
				if err := starlark.UnpackArgs("sleep", args, kwargs, "seconds", &seconds); err != nil {
					return nil, err
				}
				f, ok := starlark.AsFloat(seconds)
				if !ok {
					return nil, fmt.Errorf("sleep: want number, got %s", seconds.Type())
				}
				return starlark.None, suspend(thread, time.Duration(f*float64(time.Second)))
			}),

			"sleep_ms": starlark.NewBuiltin("sleep_ms", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var ms int64
				if err := starlark.UnpackArgs("sleep_ms", args, kwargs, "ms", &ms); err != nil {
					return nil, err
				}
				return starlark.None, suspend(thread, time.Duration(ms)*time.Millisecond)
			}),

			"ticks_ms": starlarkutil.MakeFunc("ticks_ms", func() int64 {
				return time.Since(ticksEpoch).Milliseconds()
			}),

			"ticks_diff": starlarkutil.MakeFunc("ticks_diff", func(a, b int64) int64 {
				return a - b
			}),
		},
	}
}
