package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/flowrun/flow/pkg/engine"
)

func timeoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeout",
		Short: "A poll task stops the engine once elapsed time crosses a threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeout()
		},
	}
	return cmd
}

func runTimeout() error {
	pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).Println("TIMEOUT")

	eng := engine.New(engine.Config{Logger: globalLog})

	var deferredAfterStop atomic.Bool
	stopped := make(chan struct{})

	eng.CreatePollCallback(func() bool {
		if eng.GetTime().Time >= 2.0 {
			eng.Stop()
			close(stopped)
			return false
		}
		return true
	})

	eng.CreateTimerCallback(100*time.Millisecond, func(engine.TimePoint) {
		select {
		case <-stopped:
			deferredAfterStop.Store(true)
		default:
		}
	})

	start := time.Now()
	eng.Run(1)
	elapsed := time.Since(start)

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Elapsed", elapsed.String()})
	table.Append([]string{"Deferred callback ran after stop", fmt.Sprintf("%v", deferredAfterStop.Load())})
	table.Render()
	return nil
}
