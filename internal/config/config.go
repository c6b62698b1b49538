/*
Package config loads settings for the jmorph command and library.

Settings are read, in increasing order of precedence, from defaults, an
optional configuration file (jmorph.yaml, jmorph.toml or jmorph.json),
environment variables prefixed with JMORPH_ and command line flags.
Environment variables are named after the setting's key, with dots
replaced by underscores, e.g. JMORPH_DICTIONARY_PATH.

Besides the settings in Config, a configuration may carry trace levels for
single tracers, keyed by "trace.<tracer name>". Tracers without an explicit
level use log.level.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/analysis"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables holding settings.
const EnvPrefix = "JMORPH"

// ErrConfig is returned for unreadable or inconsistent settings.
var ErrConfig = errors.New("config: invalid configuration")

// Config holds the settings of the jmorph command and library. Values are
// layered: defaults, configuration file, JMORPH_* environment, flags.
type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Log        LogConfig        `mapstructure:"log"`

	settings *Settings
}

// DictionaryConfig locates the system dictionary.
type DictionaryConfig struct {
	Path string `mapstructure:"path"`
}

// AnalysisConfig selects the split mode and optional OOV providers.
type AnalysisConfig struct {
	Mode      string `mapstructure:"mode"`
	OOVConfig string `mapstructure:"oov_config"` // JSON file with OOV providers, optional
}

// LogConfig sets the default trace level for all tracers.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadOptions controls where Load looks for settings. Cmd may be nil, e.g.
// for the C library, which is configured from the environment only.
type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
	NoFile     bool // do not search for a configuration file
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flags maps command line flags to settings.
var flags = map[string]string{
	"dictionary": "dictionary.path",
	"mode":       "analysis.mode",
	"oov-config": "analysis.oov_config",
	"log-level":  "log.level",
}

// DefaultConfig returns the built-in settings: dictionary system.jmd in the
// working directory, mode B, trace level Error.
func DefaultConfig() Config {
	return Config{
		Dictionary: DictionaryConfig{Path: "system.jmd"},
		Analysis:   AnalysisConfig{Mode: jmorph.DefaultMode.String()},
		Log:        LogConfig{Level: "Error"},
	}
}

// RegisterFlags adds the configuration flags to fs, showing defaults as
// their default values.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.StringP("dictionary", "d", defaults.Dictionary.Path, "Path to dictionary file (.jmd)")
	fs.StringP("mode", "m", defaults.Analysis.Mode, "Split mode A|B|C")
	fs.String("oov-config", defaults.Analysis.OOVConfig, "JSON file configuring out-of-vocabulary handling")
	fs.String("log-level", defaults.Log.Level, "Trace level Error|Info|Debug")
}

// Load reads the configuration. Without an explicit ConfigFile, a file
// jmorph.{yaml,toml,json} is searched in the working directory and in
// ~/.jmorph, unless NoFile is set; a missing file is not an error.
// An explicit file which cannot be read, or an invalid mode, yields ErrConfig.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read config file: %v", ErrConfig, err)
		}
	} else if !opts.NoFile {
		v.SetConfigName("jmorph")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.jmorph")
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("%w: read config file: %v", ErrConfig, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode config: %v", ErrConfig, err)
	}
	if _, err := cfg.Mode(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	cfg.settings = &Settings{v: v}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("dictionary.path", c.Dictionary.Path)
	v.SetDefault("analysis.mode", c.Analysis.Mode)
	v.SetDefault("analysis.oov_config", c.Analysis.OOVConfig)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("tracing.adapter", "go")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flags {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Mode returns the configured split mode.
func (c Config) Mode() (jmorph.Mode, error) {
	return jmorph.ParseMode(c.Analysis.Mode)
}

// EngineConfig returns the analysis configuration: the built-in default,
// or the contents of analysis.oov_config if set.
func (c Config) EngineConfig() (analysis.Config, error) {
	if c.Analysis.OOVConfig == "" {
		return analysis.DefaultConfig(), nil
	}
	f, err := os.Open(c.Analysis.OOVConfig)
	if err != nil {
		return analysis.Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()
	return analysis.ReadConfig(f)
}

// Settings returns the settings the configuration has been loaded from.
// For configurations not created by Load, the settings hold the values of c.
func (c Config) Settings() *Settings {
	if c.settings != nil {
		return c.settings
	}
	v := viper.New()
	setDefaults(v, c)
	return &Settings{v: v}
}
