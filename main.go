package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ftl/panafall/core/app"
	"github.com/ftl/panafall/core/cfg"
)

func main() {
	configuration, err := cfg.Load()
	if err != nil {
		log.Println(err)
		configuration = cfg.Static()
	}

	controller := app.New(configuration)
	err = controller.Startup()
	if err != nil {
		log.Fatal(err)
	}
	defer controller.Shutdown()

	// A paint adapter consumes the render data; drain it until one is
	// attached.
	go func() {
		for range controller.RenderData() {
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals
}
