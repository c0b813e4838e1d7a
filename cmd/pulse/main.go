// Command pulse runs background graphics alongside a prompt: a
// spinner while "connecting", then three overlaid transfer bars.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"parley"
)

func main() {
	spin := parley.NewSpinProgress(parley.SpinConfig{
		GraphicConfig: parley.GraphicConfig{
			PrefixText: "Connecting ",
			Epilogue:   func() string { return "Connected." },
		},
	})
	spin.Start()
	time.Sleep(2 * time.Second)
	spin.Close()

	if !confirm() {
		fmt.Println("aborted")
		return
	}

	transfer()
	fmt.Println("all done")
}

func confirm() bool {
	w := parley.NewInquire(parley.InquireConfig{Default: true, HasDefault: true})
	result, err := parley.Start(w, parley.StartConfig{
		Show:     "Start the transfer? ",
		HintText: "(Y/n) ",
	})
	if err != nil {
		if errors.Is(err, parley.ErrEscape) {
			return false
		}
		fmt.Fprintln(os.Stderr, "pulse:", err)
		os.Exit(1)
	}
	return result.(bool)
}

func denominate(float64) (float64, string) {
	return 1000, "MB"
}

func transfer() {
	const total = 1600

	controls := []*parley.ProgressControl{
		parley.NewProgressControl(total, parley.ProgressControlConfig{
			Color:      parley.ColorBasic("blue"),
			Denominate: denominate,
			InfoEpilogue: func(*parley.ProgressControl) string {
				return "blue done"
			},
		}),
		parley.NewProgressControl(total, parley.ProgressControlConfig{
			Color:      parley.ColorBasic("red"),
			Denominate: denominate,
		}),
		parley.NewProgressControl(total, parley.ProgressControlConfig{
			Color:      parley.ColorBasic("green"),
			Denominate: denominate,
		}),
	}

	bars := parley.NewMultiLineProgress(controls, parley.MultiLineProgressConfig{
		GraphicConfig: parley.GraphicConfig{PrefixText: "Transferring "},
	})
	bars.Start()

	var wg sync.WaitGroup
	for pace, control := range controls {
		wg.Add(1)
		go func(pace int, control *parley.ProgressControl) {
			defer wg.Done()
			for control.Value() < total {
				control.Move(float64(rand.Intn(3) + 1))
				time.Sleep(time.Duration(4+pace*3) * time.Millisecond)
			}
		}(pace, control)
	}
	wg.Wait()

	bars.Close()
}
