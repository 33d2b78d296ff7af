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

func sumCmd() *cobra.Command {
	var runFor time.Duration

	cmd := &cobra.Command{
		Use:   "sum",
		Short: "Two generators feed a sampler that prints a running sum",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(runFor)
		},
	}
	cmd.Flags().DurationVar(&runFor, "for", 5*time.Second, "how long to run before stopping")
	return cmd
}

func runSum(runFor time.Duration) error {
	pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).Println("SUM PIPELINE")

	eng := engine.New(engine.Config{Logger: globalLog})

	outA := port.NewDirectOutput[int]()
	outB := port.NewDirectOutput[int]()
	sampledA := port.NewSampledInputWithDefault(0, nil)
	sampledB := port.NewSampledInputWithDefault(0, nil)
	port.Connect[int](outA, sampledA)
	port.Connect[int](outB, sampledB)

	viewer := port.NewDirectInput(func(line string) {
		pterm.Info.Println(line)
	})
	summaryOut := port.NewDirectOutput[string]()
	port.Connect[string](summaryOut, viewer)

	var mu sync.Mutex
	var lines []string
	record := port.NewDirectInput(func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	})
	port.Connect[string](summaryOut, record)

	a := 0
	eng.CreateTimerCallback(50*time.Millisecond, func(engine.TimePoint) {
		outA.Write(a)
		a++
	})

	b := 0
	eng.CreateTimerCallback(250*time.Millisecond, func(engine.TimePoint) {
		outB.Write(b)
		b -= 5
	})

	eng.CreateTimerCallback(200*time.Millisecond, func(engine.TimePoint) {
		av, _ := sampledA.Get()
		bv, _ := sampledB.Get()
		summaryOut.Write(fmt.Sprintf("a: %d, b: %d, sum: %d", av, bv, av+bv))
	})

	eng.CreatePollCallback(func() bool {
		if eng.GetTime().Time >= runFor.Seconds() {
			eng.Stop()
			return false
		}
		return true
	})

	eng.Run(globalCfg.Workers)

	mu.Lock()
	printed := len(lines)
	sample := lines
	if len(sample) > 5 {
		sample = sample[:5]
	}
	mu.Unlock()

	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"Lines printed", fmt.Sprintf("%d", printed)})
	table.Append([]string{"First lines", fmt.Sprintf("%v", sample)})
	table.Render()
	return nil
}
