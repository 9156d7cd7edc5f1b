// FILE: engine.go
package ilog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Engine is the core struct that owns configuration, the active file handle,
// the processor goroutine and the public logging operations. One engine per
// process is the intended usage, constructed explicitly and handed to
// collaborators.
type Engine struct {
	currentConfig atomic.Value // stores *Config
	level         atomic.Int64 // live threshold, the only runtime-mutable config field
	state         State
	initMu        sync.Mutex
}

// NewEngine creates a new Engine instance with default settings.
// The engine lazily self-initializes with safe defaults on first Log if
// Initialize is never called.
func NewEngine() *Engine {
	e := &Engine{}

	e.currentConfig.Store(DefaultConfig())
	e.level.Store(defaultConfig.Level)

	e.state.IsInitialized.Store(false)
	e.state.Started.Store(false)
	e.state.ShutdownCalled.Store(false)
	e.state.ProcessorExited.Store(true)
	e.state.CurrentSize.Store(0)

	// Create a closed channel initially to prevent nil pointer issues
	initialChan := make(chan logRecord)
	close(initialChan)
	e.state.ActiveLogChannel.Store(initialChan)

	e.state.ConsoleWriter.Store(&sink{w: io.Discard})
	e.state.flushRequestChan = make(chan chan struct{}, 1)

	return e
}

// Initialize applies a validated configuration and starts the processor.
// Calling it again while running reconfigures in place and never starts a
// second worker. Calling it after Shutdown is a cold restart: the file target
// is reopened and a fresh processor started.
func (e *Engine) Initialize(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	e.initMu.Lock()
	defer e.initMu.Unlock()

	if err := e.applyConfig(cfg.Clone()); err != nil {
		return err
	}

	if err := e.start(); err != nil {
		return err
	}

	e.logBootstrap(cfg)
	return nil
}

// ApplyConfigString applies string key-value overrides to the engine's
// current configuration. Each override should be in the format "key=value".
func (e *Engine) ApplyConfigString(overrides ...string) error {
	cfg := e.getConfig().Clone()

	var errs []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	return e.Initialize(cfg)
}

// GetConfig returns a copy of current configuration
func (e *Engine) GetConfig() *Config {
	return e.getConfig().Clone()
}

// Log filters, formats and enqueues one record. Filtering is a single atomic
// comparison; below-threshold calls allocate nothing. The call never blocks
// on target I/O and never returns an error to the producer.
func (e *Engine) Log(level int64, module, message string) {
	if e.state.ShutdownCalled.Load() {
		return
	}

	if !e.state.IsInitialized.Load() {
		e.lazyInit()
	}

	// Threshold check uses the level at call time; later SetLevel calls do
	// not re-filter already queued records.
	if level < e.level.Load() {
		return
	}

	record := logRecord{
		Line: formatLine(time.Now(), goroutineID(), level, module, message),
	}
	e.sendLogRecord(record)
}

// SetLevel atomically updates the threshold, effective for subsequent Log
// calls only.
func (e *Engine) SetLevel(level int64) {
	e.level.Store(level)
}

// GetLevel returns the current threshold.
func (e *Engine) GetLevel() int64 {
	return e.level.Load()
}

// Stats returns a snapshot of the engine's processing counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Processed: e.state.Processed.Load(),
		Dropped:   e.state.TotalDropped.Load(),
		Rotations: e.state.Rotations.Load(),
	}
}

// getConfig returns the current configuration (thread-safe)
func (e *Engine) getConfig() *Config {
	return e.currentConfig.Load().(*Config)
}

// lazyInit initializes the engine with defaults when Log is called before
// Initialize. Console-only, INFO threshold, matching DefaultConfig.
func (e *Engine) lazyInit() {
	e.initMu.Lock()
	defer e.initMu.Unlock()

	if e.state.IsInitialized.Load() {
		return
	}

	if err := e.applyConfig(DefaultConfig()); err != nil {
		e.internalLog("lazy initialization failed: %v\n", err)
		return
	}
	if err := e.start(); err != nil {
		e.internalLog("lazy start failed: %v\n", err)
	}
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held
func (e *Engine) applyConfig(cfg *Config) error {
	oldCfg := e.getConfig()
	wasInitialized := e.state.IsInitialized.Load()

	e.currentConfig.Store(cfg)
	e.level.Store(cfg.Level)

	// Restart the processor when queue geometry changes under a live engine
	if e.state.Started.Load() && wasInitialized && configRequiresRestart(oldCfg, cfg) {
		if err := e.stop(); err != nil {
			e.internalLog("warning - failed to stop processor for restart: %v\n", err)
		}
	}

	currentFile, _ := e.state.CurrentFile.Load().(*os.File)

	if !cfg.fileEnabled() {
		if currentFile != nil {
			_ = currentFile.Sync()
			if err := currentFile.Close(); err != nil {
				e.internalLog("warning - failed to close log file: %v\n", err)
			}
		}
		e.state.CurrentFile.Store((*os.File)(nil))
		e.state.CurrentSize.Store(0)
	} else {
		needsNewFile := !wasInitialized || currentFile == nil || oldCfg.FilePath != cfg.FilePath
		if needsNewFile {
			// Open failure is non-fatal: report and continue degraded, the
			// target flag stays unchanged and rotation retries the path later.
			logFile, err := e.openLogFile(cfg.FilePath)
			if err != nil {
				e.internalLog("failed to open log file: %v\n", err)
				e.state.CurrentFile.Store((*os.File)(nil))
				e.state.CurrentSize.Store(0)
			} else {
				if currentFile != nil && currentFile != logFile {
					_ = currentFile.Sync()
					if err := currentFile.Close(); err != nil {
						e.internalLog("warning - failed to close old log file: %v\n", err)
					}
				}
				e.state.CurrentFile.Store(logFile)
				e.state.CurrentSize.Store(0)
				if fi, errStat := logFile.Stat(); errStat == nil {
					e.state.CurrentSize.Store(fi.Size())
				}
			}
		}
	}

	// Setup console writer based on config
	if cfg.consoleEnabled() {
		var writer io.Writer
		if cfg.ConsoleTarget == "stderr" {
			writer = os.Stderr
		} else {
			writer = os.Stdout
		}
		e.state.ConsoleWriter.Store(&sink{w: writer})
	} else {
		e.state.ConsoleWriter.Store(&sink{w: io.Discard})
	}

	e.state.IsInitialized.Store(true)
	e.state.ShutdownCalled.Store(false)

	return nil
}

// start launches the processor goroutine, assuming the engine is initialized.
// Safe to call when already started.
func (e *Engine) start() error {
	if !e.state.IsInitialized.Load() {
		return fmtErrorf("engine not initialized")
	}

	if e.state.Started.CompareAndSwap(false, true) {
		cfg := e.getConfig()

		logChannel := make(chan logRecord, cfg.BufferSize)
		e.state.ActiveLogChannel.Store(logChannel)

		e.state.ProcessorExited.Store(false)
		go e.processRecords(logChannel)
	}

	return nil
}

// stop closes the active channel and waits for the processor to drain and
// exit, bounded by the shutdown timeout.
func (e *Engine) stop() error {
	if !e.state.Started.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	ch := e.getCurrentLogChannel()
	if ch != nil {
		// Replace with a closed channel so late producers fail fast,
		// then close the live channel to signal the processor.
		closedChan := make(chan logRecord)
		close(closedChan)
		e.state.ActiveLogChannel.Store(closedChan)
		if ch != closedChan {
			close(ch)
		}
	}

	effectiveTimeout := e.shutdownTimeout()
	deadline := time.Now().Add(effectiveTimeout)
	for time.Now().Before(deadline) {
		if e.state.ProcessorExited.Load() {
			return nil
		}
		time.Sleep(minWaitTime)
	}

	if !e.state.ProcessorExited.Load() {
		return fmtErrorf("processor did not exit within timeout (%v)", effectiveTimeout)
	}

	return nil
}

// openLogFile creates parent directories and opens the active file in append mode
func (e *Engine) openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}
	return file, nil
}

// logBootstrap emits the informational startup records through the normal pipeline
func (e *Engine) logBootstrap(cfg *Config) {
	e.Log(LevelInfo, engineModule, "Logging system initialized")
	e.Log(LevelInfo, engineModule, "Log level: "+levelToString(cfg.Level))
	e.Log(LevelInfo, engineModule, "Log target: "+targetToString(cfg.Target))
	if cfg.Target != TargetConsole {
		e.Log(LevelInfo, engineModule, "Log file: "+cfg.FilePath)
	}
}

// configRequiresRestart reports whether the processor must be recreated for
// the new configuration to take effect.
func configRequiresRestart(oldCfg, newCfg *Config) bool {
	return oldCfg.BufferSize != newCfg.BufferSize ||
		oldCfg.FlushIntervalMs != newCfg.FlushIntervalMs
}

// internalLog handles writing internal engine diagnostics to stderr, if enabled.
func (e *Engine) internalLog(format string, args ...any) {
	cfg := e.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}

	// Ensure consistent "ilog: " prefix
	if !strings.HasPrefix(format, "ilog: ") {
		format = "ilog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
