// FILE: control/server.go

// Package control exposes a small HTTP plane over the logging engine:
// runtime level changes, health, engine counters and performance statistics.
package control

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/rathven/ilog"
	"github.com/rathven/ilog/perfmon"
)

// Server routes control requests to an engine and an optional monitor.
type Server struct {
	engine  *ilog.Engine
	monitor *perfmon.Monitor
	started time.Time

	httpServer *fasthttp.Server
}

// NewServer builds a control server over engine. monitor may be nil; the
// /stats endpoint then reports only engine counters.
func NewServer(engine *ilog.Engine, monitor *perfmon.Monitor) *Server {
	if engine == nil {
		engine = ilog.Default()
	}
	s := &Server{
		engine:  engine,
		monitor: monitor,
		started: time.Now(),
	}
	s.httpServer = &fasthttp.Server{
		Handler: s.Handler,
		Name:    "ilog-control",
	}
	return s
}

// ListenAndServe blocks serving the control plane on addr.
func (s *Server) ListenAndServe(addr string) error {
	return s.httpServer.ListenAndServe(addr)
}

// Close stops the listener and waits for in-flight requests.
func (s *Server) Close() error {
	return s.httpServer.Shutdown()
}

// Handler is the fasthttp request handler; exported so callers can mount it
// inside their own server.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/log-level":
		s.handleLogLevel(ctx)
	case "/health":
		s.handleHealth(ctx)
	case "/status":
		s.handleStatus(ctx)
	case "/metrics":
		s.handleMetrics(ctx)
	case "/stats":
		s.handleStats(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) handleLogLevel(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Method()) {
	case fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, map[string]any{
			"current_level":    ilog.LevelToString(s.engine.GetLevel()),
			"available_levels": ilog.LevelNames(),
		})
	case fasthttp.MethodPost:
		var req struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Level == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "Missing 'level' field")
			return
		}

		// Unknown names fall back to INFO rather than failing the request
		level, err := ilog.Level(req.Level)
		applied := req.Level
		if err != nil {
			level = ilog.LevelInfo
			applied = "INFO"
		}
		s.engine.SetLevel(level)

		writeJSON(ctx, fasthttp.StatusOK, map[string]any{
			"status": "ok",
			"level":  applied,
		})
	default:
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	if string(ctx.Method()) != fasthttp.MethodGet {
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	if string(ctx.Method()) != fasthttp.MethodGet {
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
		return
	}
	stats := s.engine.Stats()
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"log_level":      ilog.LevelToString(s.engine.GetLevel()),
		"processed":      stats.Processed,
		"dropped":        stats.Dropped,
		"rotations":      stats.Rotations,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleMetrics(ctx *fasthttp.RequestCtx) {
	if string(ctx.Method()) != fasthttp.MethodGet {
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
		return
	}
	stats := s.engine.Stats()

	// Plain-text exposition, one counter per line
	ctx.SetContentType("text/plain; charset=utf-8")
	fmt.Fprintf(ctx, "log_records_processed %d\n", stats.Processed)
	fmt.Fprintf(ctx, "log_records_dropped %d\n", stats.Dropped)
	fmt.Fprintf(ctx, "log_rotations %d\n", stats.Rotations)
	if s.monitor != nil {
		fmt.Fprintf(ctx, "frames_total %d\n", s.monitor.TotalFrames())
		fmt.Fprintf(ctx, "fps_current %.2f\n", s.monitor.FPS())
		fmt.Fprintf(ctx, "frame_time_avg_ms %.2f\n", s.monitor.AverageFrameTime())
	}
}

func (s *Server) handleStats(ctx *fasthttp.RequestCtx) {
	if string(ctx.Method()) != fasthttp.MethodGet {
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
		return
	}
	resp := map[string]any{
		"engine": s.engine.Stats(),
	}
	if s.monitor != nil {
		resp["performance"] = map[string]any{
			"total_frames":       s.monitor.TotalFrames(),
			"current_fps":        s.monitor.FPS(),
			"frame_time_current": s.monitor.CurrentFrameTime(),
			"frame_time_average": s.monitor.AverageFrameTime(),
			"frame_time_min":     s.monitor.MinFrameTime(),
			"frame_time_max":     s.monitor.MaxFrameTime(),
		}
		resp["text"] = s.monitor.Stats()
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Encoding failure")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	fmt.Fprintf(ctx, `{"error":%q}`, msg)
}
