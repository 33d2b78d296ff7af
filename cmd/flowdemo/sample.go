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

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "A SampledInput always returns the latest value, never rolling back",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample()
		},
	}
	return cmd
}

func runSample() error {
	pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).Println("LATEST-WINS SAMPLING")

	eng := engine.New(engine.Config{Logger: globalLog})

	in := port.NewSampledInputWithDefault(0, nil)
	out := port.NewDirectOutput[int]()
	port.Connect[int](out, in)

	var mu sync.Mutex
	var observed []int

	eng.CreateTimerCallback(10*time.Millisecond, func(engine.TimePoint) {
		v, _ := in.Get()
		mu.Lock()
		observed = append(observed, v)
		mu.Unlock()
	})

	var stopOnce sync.Once
	go func() {
		for v := 1; v <= 1000; v++ {
			out.Write(v)
		}
		time.Sleep(50 * time.Millisecond)
		stopOnce.Do(eng.Stop)
	}()

	eng.Run(1)

	mu.Lock()
	count := len(observed)
	last := 0
	if count > 0 {
		last = observed[count-1]
	}
	monotonic := true
	for i := 1; i < count; i++ {
		if observed[i] < observed[i-1] {
			monotonic = false
			break
		}
	}
	mu.Unlock()

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Samples observed", fmt.Sprintf("%d", count)})
	table.Append([]string{"Last value", fmt.Sprintf("%d", last)})
	table.Append([]string{"Non-decreasing", fmt.Sprintf("%v", monotonic)})
	table.Render()
	return nil
}
