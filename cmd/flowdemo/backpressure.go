package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/flowrun/flow/pkg/engine"
	"github.com/flowrun/flow/pkg/port"
)

func backpressureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backpressure",
		Short: "A capacity-2 CallbackInput blocks a fast writer behind a slow consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackpressure()
		},
	}
	return cmd
}

func runBackpressure() error {
	pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).Println("BACKPRESSURE")

	eng := engine.New(engine.Config{Logger: globalLog})

	var mu sync.Mutex
	var consumed []int
	in := port.NewCallbackInput(eng, func(v int) {
		time.Sleep(100 * time.Millisecond)
		mu.Lock()
		consumed = append(consumed, v)
		mu.Unlock()
		pterm.Info.Printfln("consumed %d", v)
	}, 2)

	producer := port.NewDirectOutput[int]()
	port.Connect[int](producer, in)

	done := make(chan struct{})
	go func() {
		defer close(done)
		writeStart := time.Now()
		for _, v := range []int{1, 2, 3} {
			producer.Write(v)
		}
		pterm.Info.Printfln("third write returned %v after start", time.Since(writeStart))
	}()

	go func() {
		<-done
		time.Sleep(500 * time.Millisecond)
		eng.Stop()
	}()

	eng.Run(1)

	mu.Lock()
	result := consumed
	mu.Unlock()

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Values consumed", fmt.Sprintf("%v", result)})
	table.Render()
	return nil
}
