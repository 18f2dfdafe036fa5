// Package cli holds the settings and helpers shared by the branchcut
// sub-commands.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gavrog/branchcut/internal/config"
	"github.com/gavrog/branchcut/pkg/branchcut"
	"github.com/gavrog/branchcut/pkg/branchcut/engine"
)

// RootOptions holds the global flags and, once resolved, the effective
// configuration of a command run.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Limit      int
	StepLimit  int
	Timeout    time.Duration
	Trace      bool

	Config config.Config
	Log    *logrus.Logger
}

func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&o.LogLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	flags.StringVar(&o.LogFormat, "log-format", "text", "log format (text|json)")
	flags.IntVar(&o.Limit, "limit", 0, "maximum number of results, 0 for all")
	flags.IntVar(&o.StepLimit, "step-limit", 0, "maximum search steps per result, 0 for unbounded")
	flags.DurationVar(&o.Timeout, "timeout", 0, "give up after this long, 0 for never")
	flags.BoolVar(&o.Trace, "trace", false, "log every step of the search (implies --log-level trace)")
}

// Resolve loads the configuration file and lays the flags the user set
// explicitly over it.
func (o *RootOptions) Resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.LogFormat
	}
	if flags.Changed("limit") {
		cfg.Search.Limit = o.Limit
	}
	if flags.Changed("step-limit") {
		cfg.Search.StepLimit = o.StepLimit
	}
	if flags.Changed("timeout") {
		cfg.Search.Timeout = o.Timeout
	}
	if flags.Changed("trace") {
		cfg.Search.Trace = o.Trace
	}
	if cfg.Search.Trace {
		cfg.Log.Level = logrus.TraceLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.Config = cfg
	o.Log = cfg.Logger(cmd.ErrOrStderr())
	return nil
}

func (o *RootOptions) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithLogger(o.Log),
		engine.WithStepLimit(o.Config.Search.StepLimit),
	}
	if o.Config.Search.Trace {
		opts = append(opts, engine.WithTracer(branchcut.LoggingTracer{Logger: o.Log}))
	}
	if o.Config.Search.UndoAppliedOnly {
		opts = append(opts, engine.WithUndoAppliedOnly())
	}
	return opts
}

// Context applies the configured timeout to parent.
func (o *RootOptions) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if o.Config.Search.Timeout > 0 {
		return context.WithTimeout(parent, o.Config.Search.Timeout)
	}
	return context.WithCancel(parent)
}

// Enumerate pulls results from e until it is exhausted or limit results
// were handed to emit, and returns how many were. A limit of 0 means
// no limit.
func Enumerate[P, R any](ctx context.Context, e *engine.Engine[P, R], limit int, emit func(R) error) (int, error) {
	n := 0
	for r, err := range e.All(ctx) {
		if err != nil {
			if errors.Is(err, branchcut.ErrIncomplete) {
				return n, &IncompleteError{Found: n, Err: err}
			}
			return n, err
		}
		if err := emit(r); err != nil {
			return n, err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	return n, nil
}
