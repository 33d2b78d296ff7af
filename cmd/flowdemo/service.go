package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/flowrun/flow/pkg/engine"
	"github.com/flowrun/flow/pkg/service"
)

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "A ServiceClient calls a ServiceServer that doubles its input",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runService()
		},
	}
	return cmd
}

func runService() error {
	pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).Println("SERVICE ROUND-TRIP")

	eng := engine.New(engine.Config{Logger: globalLog})

	server := service.NewServiceServer(eng, func(request int) int {
		return request * 2
	}, globalCfg.Scenario.QueueSize)
	client := service.NewServiceClient[int, int](eng, globalLog)
	service.Connect(client, server)

	var syncResult int
	var asyncResult int
	var asyncDone = make(chan struct{})

	eng.CreateInitCallback(func() bool {
		return true
	})

	eng.CreatePollCallback(func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(globalCfg.Scenario.CallTimeout))
		defer cancel()

		resp, err := client.Call(ctx, 21)
		if err != nil {
			globalLog.Error("sync call failed", "err", err)
		}
		syncResult = resp

		client.AsyncCall(10, func(resp int) {
			asyncResult = resp
			close(asyncDone)
		})

		<-asyncDone
		eng.Stop()
		return false
	})

	eng.Run(2)

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"sync_call(21)", fmt.Sprintf("%d", syncResult)})
	table.Append([]string{"async_call(10)", fmt.Sprintf("%d", asyncResult)})
	table.Render()
	return nil
}
