package config

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/viper"
)

// traceKeyPrefix is the prefix of per-tracer trace levels.
const traceKeyPrefix = "trace"

// Settings presents a viper configuration as a schuko.Configuration.
type Settings struct {
	v *viper.Viper
}

var _ schuko.Configuration = (*Settings)(nil)

// InitDefaults is part of schuko.Configuration. Defaults are set by Load.
func (s *Settings) InitDefaults() {}

func (s *Settings) IsSet(key string) bool {
	return s.v.IsSet(key)
}

// GetString returns the value for key. Trace levels of tracers without an
// explicit setting default to log.level.
func (s *Settings) GetString(key string) string {
	if strings.HasPrefix(key, traceKeyPrefix+".") && !s.v.IsSet(key) {
		return s.v.GetString("log.level")
	}
	return s.v.GetString(key)
}

func (s *Settings) GetInt(key string) int {
	return s.v.GetInt(key)
}

func (s *Settings) GetBool(key string) bool {
	return s.v.GetBool(key)
}

// IsInteractive is part of schuko.Configuration.
func (s *Settings) IsInteractive() bool {
	return false
}

// SetupTracing installs tracers writing to stderr, using the trace levels of
// the configuration. Tracers which have been selected before are replaced.
func (c Config) SetupTracing() error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(c.Settings(), traceKeyPrefix, trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("%w: tracing: %v", ErrConfig, err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
