package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/picosim/picosim/bridges"
	"github.com/picosim/picosim/cmds"
	"github.com/picosim/picosim/logs"
	"github.com/picosim/picosim/modes"
	"github.com/picosim/picosim/sandboxes"
	"github.com/picosim/picosim/simconfigs"
	"github.com/reusee/dscope"
	"golang.org/x/term"
)

var (
	serveFlag = cmds.Switch("serve")
	watchFlag = cmds.Switch("-watch")
	runFlag   = cmds.Var[string]("run")
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	if *serveFlag {
		scope.Call(func(
			host *sandboxes.Host,
			server *bridges.Server,
			addr simconfigs.ListenAddr,
		) {
			host.Start(ctx)
			ce(server.ListenAndServe(ctx, string(addr)))
		})
		return
	}

	scope.Call(func(
		logger logs.Logger,
		host *sandboxes.Host,
	) {
		source := getSource()
		if source == "" {
			fmt.Fprintln(os.Stderr, "no script: use 'run <path>' or pipe to stdin")
			os.Exit(1)
		}

		// the host outlives the interrupt signal: an interrupt turns into a
		// STOP message, and the host must stay up to deliver the stop report
		hostCtx, cancelHost := context.WithCancel(context.Background())
		defer cancelHost()
		host.Start(hostCtx)
		host.Send(bridges.RunCode(source))

		failed := false
		for {
			var msg bridges.Message
			select {
			case msg = <-host.Events():
			case <-ctx.Done():
				// interrupted from the terminal; stop the run and keep
				// draining until it reports completion
				host.Send(bridges.Stop())
				ctx = context.Background()
				continue
			}

			switch msg.Type {

			case bridges.KindPinUpdate:
				if *watchFlag {
					fmt.Printf("pin %d = %d\n", *msg.Pin, *msg.Value)
				}

			case bridges.KindOutput:
				if msg.Output != "" {
					fmt.Print(msg.Output)
				}

			case bridges.KindError:
				fmt.Fprintln(os.Stderr, "error:", msg.Error)
				failed = true

			case bridges.KindStatus:
				// a bootstrap failure ends the run with no completion message
				if msg.Status == bridges.StatusError {
					os.Exit(1)
				}
				logger.Debug("status",
					"status", msg.Status,
				)

			case bridges.KindExecutionComplete:
				if failed {
					os.Exit(1)
				}
				return
			}
		}
	})
}

func getSource() string {
	if *runFlag != "" {
		content, err := os.ReadFile(*runFlag)
		ce(err)
		return string(content)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return ""
	}
	content, err := io.ReadAll(os.Stdin)
	ce(err)
	return string(content)
}

func ce(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
