package cmds

import "sync"

var defaultExecutor = sync.OnceValue(NewExecutor)

// Define registers a command on the process-wide executor.
func Define(name string, command *Command) {
	defaultExecutor().Define(name, command)
}

// Execute runs args against the process-wide executor, panicking on error.
// Call it once, early in main, before building the dscope scope.
func Execute(args []string) {
	defaultExecutor().MustExecute(args)
}
