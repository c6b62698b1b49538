package jmorph

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the granularity at which compound words are reported.
type Mode int8

// Split modes, from shortest to longest units.
const (
	ModeA Mode = iota // short units
	ModeB             // medium units (default)
	ModeC             // long units
)

// DefaultMode is the mode used if clients do not ask for a specific one.
const DefaultMode = ModeB

func (m Mode) String() string {
	switch m {
	case ModeA:
		return "A"
	case ModeB:
		return "B"
	case ModeC:
		return "C"
	}
	return fmt.Sprintf("Mode(%d)", int8(m))
}

// ABIMode is the split mode as it crosses the C boundary. The values are
// identical to the constants of C enum jmorph_mode.
type ABIMode int32

// Caller-facing split modes.
const (
	ABIModeShort  ABIMode = 0
	ABIModeMedium ABIMode = 1
	ABIModeLong   ABIMode = 2
)

// ErrInvalidMode is returned for split modes outside of A, B and C.
var ErrInvalidMode = errors.New("jmorph: invalid split mode")

// ModeFromABI maps a caller-facing split mode to the analyzer's mode.
// Every one of the three values maps to exactly one Mode. C enums are plain
// integers, so other values may arrive at the boundary; they are rejected.
func ModeFromABI(v ABIMode) (Mode, error) {
	switch v {
	case ABIModeShort:
		return ModeA, nil
	case ABIModeMedium:
		return ModeB, nil
	case ABIModeLong:
		return ModeC, nil
	}
	return DefaultMode, fmt.Errorf("%w: %d", ErrInvalidMode, int32(v))
}

// ParseMode reads a split mode from a string, i.e. "A", "B" or "C".
// Case is ignored, as is surrounding white space.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ModeA, nil
	case "B", "":
		return ModeB, nil
	case "C":
		return ModeC, nil
	}
	return DefaultMode, fmt.Errorf("%w: %q (want A|B|C)", ErrInvalidMode, s)
}
