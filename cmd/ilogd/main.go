// FILE: cmd/ilogd/main.go

// ilogd is a demonstration daemon: a simulated frame-processing loop logging
// through the engine, with the HTTP control plane exposed for runtime level
// changes and statistics.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rathven/ilog"
	"github.com/rathven/ilog/control"
	"github.com/rathven/ilog/perfmon"
)

func main() {
	configPath := flag.String("config", "ilogd.toml", "path to TOML configuration")
	listenAddr := flag.String("listen", ":8081", "control plane listen address")
	flag.Parse()

	cfg, err := ilog.NewConfigFromFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	engine := ilog.NewEngine()
	if err := engine.Initialize(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging engine: %v\n", err)
		os.Exit(1)
	}

	mainLog := ilog.NewModule(engine, "MAIN")
	cameraLog := ilog.NewModule(engine, "CAMERA")
	inferenceLog := ilog.NewModule(engine, "INFERENCE")

	monitor := perfmon.NewMonitor()

	// Control plane
	ctrl := control.NewServer(engine, monitor)
	go func() {
		mainLog.Info("Control server listening on", *listenAddr)
		if err := ctrl.ListenAndServe(*listenAddr); err != nil {
			mainLog.Error("Control server stopped:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	mainLog.Info("Service started")

	// Simulated capture loop until signaled
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
loop:
	for {
		select {
		case sig := <-sigChan:
			mainLog.Info("Received signal, shutting down:", sig.String())
			break loop

		case <-ticker.C:
			monitor.StartFrame()

			frame++
			cameraLog.Debug("Captured frame", frame)

			// Simulated inference work
			time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
			if frame%100 == 0 {
				inferenceLog.Warn("Slow inference on frame", frame)
			} else {
				inferenceLog.Trace("Inference complete for frame", frame)
			}

			monitor.EndFrame()

			if monitor.ShouldDisplayStats(10 * time.Second) {
				mainLog.Info(monitor.Stats())
			}
		}
	}

	if err := ctrl.Close(); err != nil {
		mainLog.Error("Control server close failed:", err)
	}

	mainLog.Info("Processed frames:", monitor.TotalFrames())
	if err := engine.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Engine shutdown error: %v\n", err)
		os.Exit(1)
	}
}
