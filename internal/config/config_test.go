package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/analysis"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

func newFlagBinder(t *testing.T, args ...string) *fakeBinder {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())
	require.NoError(t, fs.Parse(args))
	return &fakeBinder{fs: fs}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(t), Defaults: DefaultConfig(), NoFile: true})
	require.NoError(t, err)
	assert.Equal(t, "system.jmd", cfg.Dictionary.Path)
	assert.Equal(t, "B", cfg.Analysis.Mode)
	assert.Equal(t, "Error", cfg.Log.Level)
	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, jmorph.ModeB, mode)
}

func TestLoadFlagOverride(t *testing.T) {
	binder := newFlagBinder(t, "-d", "/tmp/x.jmd", "--mode=c", "--log-level=Debug")
	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: DefaultConfig(), NoFile: true})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.jmd", cfg.Dictionary.Path)
	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, jmorph.ModeC, mode)
	assert.Equal(t, "Debug", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JMORPH_DICTIONARY_PATH", "/opt/jmorph/full.jmd")
	t.Setenv("JMORPH_ANALYSIS_MODE", "A")
	cfg, err := Load(LoadOptions{Defaults: DefaultConfig(), NoFile: true})
	require.NoError(t, err)
	assert.Equal(t, "/opt/jmorph/full.jmd", cfg.Dictionary.Path)
	assert.Equal(t, "A", cfg.Analysis.Mode)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, "jmorph.yaml", `
dictionary:
  path: small.jmd
analysis:
  mode: C
log:
  level: Info
trace:
  jmorph:
    analysis: Debug
`)
	cfg, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, "small.jmd", cfg.Dictionary.Path)
	assert.Equal(t, "C", cfg.Analysis.Mode)
	settings := cfg.Settings()
	assert.Equal(t, "Debug", settings.GetString("trace.jmorph.analysis"))
	assert.Equal(t, "Info", settings.GetString("trace.jmorph.dic"), "falls back to log level")
	assert.Equal(t, "", settings.GetString("tracejmorph.dic"))
	assert.Equal(t, "go", settings.GetString("tracing.adapter"))
}

func TestLoadFailures(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml"), Defaults: DefaultConfig()})
	assert.ErrorIs(t, err, ErrConfig)
	_, err = Load(LoadOptions{ConfigFile: writeConfig(t, "bad.yaml", ":\t:bad yaml:::"), Defaults: DefaultConfig()})
	assert.ErrorIs(t, err, ErrConfig)
	_, err = Load(LoadOptions{Cmd: newFlagBinder(t, "--mode=X"), Defaults: DefaultConfig(), NoFile: true})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultConfig()
	ecfg, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultConfig(), ecfg)
	//
	cfg.Analysis.OOVConfig = writeConfig(t, "oov.json", `{"oovProviderPlugin": [
		{"class": "SimpleOOV", "oovPOS": ["補助記号","一般","*","*","*","*"], "leftId": 0, "rightId": 0, "cost": 10000}
	]}`)
	ecfg, err = cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 10000, ecfg.OOVProviders[0].Cost)
	//
	cfg.Analysis.OOVConfig = filepath.Join(t.TempDir(), "none.json")
	_, err = cfg.EngineConfig()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSetupTracing(t *testing.T) {
	defer trace2go.Teardown()
	cfg := DefaultConfig()
	cfg.Log.Level = "Debug"
	require.NoError(t, cfg.SetupTracing())
	assert.Equal(t, tracing.LevelDebug, tracing.Select("jmorph.config").GetTraceLevel())
	//
	cfg.Log.Level = "Error"
	require.NoError(t, cfg.SetupTracing())
	assert.Equal(t, tracing.LevelError, tracing.Select("jmorph.other").GetTraceLevel())
}
