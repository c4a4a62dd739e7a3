// Command demo walks a traffic light machine through twelve TIMER cycles,
// printing the active state on every transition.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/scxrt"
)

func main() {
	cfg, err := scxrt.NewMachine("trafficLight").
		Initial("red").
		State("red").On("TIMER", "green").End().
		State("green").On("TIMER", "yellow").End().
		State("yellow").On("TIMER", "red").End().
		Build()
	if err != nil {
		panic(err)
	}

	def, err := scxrt.NewDefinition(cfg)
	if err != nil {
		panic(err)
	}

	in := scxrt.Interpret(def, scxrt.WithLogger(scxrt.NewDefaultLogger()))
	in.Subscribe(scxrt.Observer{
		Next: func(s scxrt.State) {
			fmt.Printf("-> %s\n", s.Value.String())
		},
	})
	in.Start()
	defer in.Stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-ticker.C:
			in.Send(scxrt.NewEvent("TIMER"))
			cycles++
			if cycles >= 12 {
				fmt.Println("Demo complete after 12 cycles.")
				return
			}
		case <-sig:
			fmt.Println("Shutting down gracefully...")
			return
		}
	}
}
