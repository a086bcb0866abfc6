// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects what kind of text a test presents.
type Mode int

// Test modes.
const (
	ModeWords Mode = iota
	ModeQuote
	ModeZen
)

func (m Mode) String() string {
	switch m {
	case ModeWords:
		return "words"
	case ModeQuote:
		return "quote"
	case ModeZen:
		return "zen"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as used in the config file.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "words":
		return ModeWords, nil
	case "quote":
		return ModeQuote, nil
	case "zen":
		return ModeZen, nil
	default:
		return ModeWords, fmt.Errorf("%w: unknown mode %q", ErrConfig, s)
	}
}

// Config defines test settings. It is passed by value and never changes
// once a test has started.
type Config struct {
	Mode        Mode
	Lang        string
	File        string
	Words       int
	TimeLimit   int // seconds, 0 means no limit
	Punctuation bool
	Numbers     bool
	Backtrack   bool
	Death       bool
}

// HasTimeLimit reports whether the test ends on a timer.
func (c Config) HasTimeLimit() bool {
	return c.TimeLimit > 0
}

// Error kinds reported by collaborators before a test is built.
var (
	ErrConfig  = errors.New("invalid config")
	ErrContent = errors.New("invalid content")
	ErrScheme  = errors.New("invalid color scheme")
)
