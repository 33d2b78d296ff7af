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

func initFailureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-failure",
		Short: "A failing init poisons the run: no poll body anywhere executes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitFailure()
		},
	}
	return cmd
}

func runInitFailure() error {
	pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).Println("INIT FAILURE")

	eng := engine.New(engine.Config{Logger: globalLog})

	var flagSet atomic.Bool
	var shutdownRan atomic.Bool

	eng.CreateInitCallback(func() bool {
		pterm.Warning.Println("init task A failing on purpose")
		return false
	})

	eng.CreateInitPollShutdownCallback(
		func() bool { return true },
		func() bool {
			flagSet.Store(true)
			return false
		},
		func() {
			shutdownRan.Store(true)
		},
	)

	go func() {
		time.Sleep(50 * time.Millisecond)
		eng.Stop()
	}()
	eng.Run(1)

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Flag ever set", fmt.Sprintf("%v", flagSet.Load())})
	table.Append([]string{"Shutdown ran", fmt.Sprintf("%v", shutdownRan.Load())})
	table.Render()
	return nil
}
