// Package key defines the logical keys understood by the typing engine.
package key

import "fmt"

// Kind identifies a logical key variant.
type Kind int

// Logical key variants.
const (
	KindChar Kind = iota
	KindSpace
	KindBackspace
	KindEnter
	KindEscape
	KindCtrlC
	KindOther
)

// Key is a normalized input event. Input backends must translate their
// native events into Key values before handing them to the engine.
type Key struct {
	Kind Kind
	Rune rune
	Desc string
}

// Fixed keys.
var (
	Space     = Key{Kind: KindSpace}
	Backspace = Key{Kind: KindBackspace}
	Enter     = Key{Kind: KindEnter}
	Escape    = Key{Kind: KindEscape}
	CtrlC     = Key{Kind: KindCtrlC}
)

// Char returns a printable character key.
func Char(r rune) Key {
	return Key{Kind: KindChar, Rune: r}
}

// Other wraps an input the engine has no use for.
func Other(desc string) Key {
	return Key{Kind: KindOther, Desc: desc}
}

// IsAbort reports whether the key is an abort signal owned by the caller.
func (k Key) IsAbort() bool {
	return k.Kind == KindEscape || k.Kind == KindCtrlC
}

// IsSeparator reports whether the key commits the current word.
func (k Key) IsSeparator() bool {
	return k.Kind == KindSpace || k.Kind == KindEnter
}

func (k Key) String() string {
	switch k.Kind {
	case KindChar:
		return fmt.Sprintf("Char(%q)", k.Rune)
	case KindSpace:
		return "Space"
	case KindBackspace:
		return "Backspace"
	case KindEnter:
		return "Enter"
	case KindEscape:
		return "Escape"
	case KindCtrlC:
		return "CtrlC"
	default:
		return fmt.Sprintf("Other(%s)", k.Desc)
	}
}
