// FILE: builder.go
package ilog

// Builder provides a fluent API for building engine configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Engine instance with the specified configuration.
func (b *Builder) Build() (*Engine, error) {
	if b.err != nil {
		return nil, b.err
	}

	engine := NewEngine()

	// Initialize handles all validation and startup.
	if err := engine.Initialize(b.cfg); err != nil {
		return nil, err
	}

	return engine, nil
}

// Config returns the built configuration without constructing an engine.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Level sets the log level.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the log level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Target sets the output target.
func (b *Builder) Target(target int64) *Builder {
	b.cfg.Target = target
	return b
}

// TargetString sets the output target from a string.
func (b *Builder) TargetString(target string) *Builder {
	if b.err != nil {
		return b
	}
	targetVal, err := Target(target)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Target = targetVal
	return b
}

// FilePath sets the active log file path.
func (b *Builder) FilePath(path string) *Builder {
	b.cfg.FilePath = path
	return b
}

// MaxSizeBytes sets the rotation ceiling in bytes.
func (b *Builder) MaxSizeBytes(size int64) *Builder {
	b.cfg.MaxSizeBytes = size
	return b
}

// MaxSizeMB sets the rotation ceiling in megabytes.
func (b *Builder) MaxSizeMB(size int64) *Builder {
	b.cfg.MaxSizeBytes = size * 1024 * 1024
	return b
}

// MaxBackups sets the backup chain length.
func (b *Builder) MaxBackups(count int64) *Builder {
	b.cfg.MaxBackups = count
	return b
}

// BufferSize sets the channel buffer size.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// FlushIntervalMs sets the periodic sync interval.
func (b *Builder) FlushIntervalMs(interval int64) *Builder {
	b.cfg.FlushIntervalMs = interval
	return b
}

// ConsoleTarget selects stdout or stderr for console output.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// Example usage:
// engine, err := ilog.NewBuilder().
//
//	TargetString("both").
//	FilePath("/var/log/app/service.log").
//	LevelString("debug").
//	MaxSizeMB(10).
//	MaxBackups(5).
//	Build()
//
// if err == nil {
//
//	 defer engine.Shutdown()
//	 engine.Log(ilog.LevelInfo, "MAIN", "engine ready")
//
// }
