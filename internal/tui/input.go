package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typecrab/internal/key"
)

// keysFromMsg translates a Bubble Tea key event into logical keys. A
// single event may carry several runes when input arrives quickly.
func keysFromMsg(msg tea.KeyMsg) []key.Key {
	if msg.Paste {
		return []key.Key{key.Other("paste")}
	}
	switch msg.Type {
	case tea.KeyCtrlC:
		return []key.Key{key.CtrlC}
	case tea.KeyEsc:
		return []key.Key{key.Escape}
	case tea.KeyEnter:
		return []key.Key{key.Enter}
	case tea.KeyBackspace:
		return []key.Key{key.Backspace}
	case tea.KeyDelete:
		return []key.Key{key.Other("delete")}
	case tea.KeySpace:
		return []key.Key{key.Space}
	case tea.KeyRunes:
		if msg.Alt {
			return []key.Key{key.Other(msg.String())}
		}
		keys := make([]key.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == ' ' {
				keys = append(keys, key.Space)
				continue
			}
			keys = append(keys, key.Char(r))
		}
		return keys
	default:
		return []key.Key{key.Other(msg.String())}
	}
}
