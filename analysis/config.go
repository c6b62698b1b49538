package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/jmorph/dic"
)

// SimpleOOV is the class of the OOV provider which creates a single word of
// fixed part-of-speech and cost, wherever no dictionary word begins.
const SimpleOOV = "SimpleOOV"

// OOVRule configures an OOV provider.
type OOVRule struct {
	Class   string   `json:"class"`
	POS     []string `json:"oovPOS"`
	LeftID  int      `json:"leftId"`
	RightID int      `json:"rightId"`
	Cost    int      `json:"cost"`
}

// Config is the configuration of an analysis engine.
type Config struct {
	OOVProviders []OOVRule `json:"oovProviderPlugin"`
}

// ErrConfig is returned for an unusable engine configuration.
var ErrConfig = errors.New("analysis: invalid configuration")

// DefaultConfig returns the standard configuration: OOV words are common nouns.
func DefaultConfig() Config {
	return Config{
		OOVProviders: []OOVRule{{
			Class:   SimpleOOV,
			POS:     []string{"名詞", "普通名詞", "一般", "*", "*", "*"},
			LeftID:  0,
			RightID: 0,
			Cost:    30000,
		}},
	}
}

// ReadConfig reads a JSON configuration. Settings missing from the input keep
// the values of DefaultConfig.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s", ErrConfig, err.Error())
	}
	return cfg, nil
}

// oovParams is a validated SimpleOOV rule.
type oovParams struct {
	leftID, rightID uint16
	cost            int16
	pos             []string
}

// validate checks the configuration against a grammar. Exactly one OOV
// provider of class SimpleOOV is supported.
func (cfg Config) validate(g *dic.Grammar) (oovParams, error) {
	p := oovParams{}
	switch len(cfg.OOVProviders) {
	case 0:
		return p, fmt.Errorf("%w: no OOV provider configured", ErrConfig)
	case 1:
	default:
		return p, fmt.Errorf("%w: %d OOV providers configured, only one is supported",
			ErrConfig, len(cfg.OOVProviders))
	}
	rule := cfg.OOVProviders[0]
	if rule.Class != SimpleOOV {
		return p, fmt.Errorf("%w: unknown OOV provider class %q", ErrConfig, rule.Class)
	}
	if len(rule.POS) != dic.POSDepth {
		return p, fmt.Errorf("%w: OOV part-of-speech %v must have %d levels", ErrConfig, rule.POS, dic.POSDepth)
	}
	if rule.LeftID < 0 || rule.LeftID >= g.LeftIDs() {
		return p, fmt.Errorf("%w: OOV left-id %d outside of connection matrix", ErrConfig, rule.LeftID)
	}
	if rule.RightID < 0 || rule.RightID >= g.RightIDs() {
		return p, fmt.Errorf("%w: OOV right-id %d outside of connection matrix", ErrConfig, rule.RightID)
	}
	if rule.Cost < -0x8000 || rule.Cost > 0x7fff {
		return p, fmt.Errorf("%w: OOV cost %d out of range", ErrConfig, rule.Cost)
	}
	p.leftID, p.rightID, p.cost = uint16(rule.LeftID), uint16(rule.RightID), int16(rule.Cost) //nolint:gosec
	p.pos = append([]string(nil), rule.POS...)
	return p, nil
}
