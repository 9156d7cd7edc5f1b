// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/rathven/ilog"
	"github.com/rathven/ilog/compat"
	"github.com/rathven/ilog/control"
)

func main() {
	engine, err := ilog.NewBuilder().
		TargetString("both").
		FilePath("./fasthttp_example.log").
		LevelString("debug").
		BufferSize(2048).
		Build()
	if err != nil {
		panic(err)
	}
	defer engine.Shutdown()

	// The adapter routes fasthttp's own messages into the engine
	adapter := compat.NewFastHTTPAdapter(engine,
		compat.WithLevelDetector(customLevelDetector),
	)

	// Control plane shares the listener with the application routes
	ctrl := control.NewServer(engine, nil)
	accessLog := ilog.NewModule(engine, "HTTP")

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			path := string(ctx.Path())
			if path == "/log-level" || strings.HasPrefix(path, "/health") ||
				path == "/status" || path == "/metrics" || path == "/stats" {
				ctrl.Handler(ctx)
				return
			}
			accessLog.Debug("Request:", string(ctx.Method()), path)
			ctx.SetContentType("text/plain")
			fmt.Fprintf(ctx, "Hello from %s\n", path)
		},
		Logger: adapter,
		Name:   "ilog-example",
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection cannot be served") {
		return ilog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return ilog.LevelError
	}

	return compat.DetectLogLevel(msg)
}
