// Package content validates test settings and produces the text to type.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/verte-zerg/typecrab/internal/model"
)

// DefaultLang is used when no language is given.
const DefaultLang = "en"

const (
	wordsDir  = "words"
	quotesDir = "quotes"
)

//go:embed data
var embedded embed.FS

func builtin() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Library resolves languages from the built-in catalogue and an optional
// user directory laid out as words/<lang>.txt and quotes/<lang>.txt.
type Library struct {
	sources []fs.FS
	gen     *Generator
}

// NewLibrary returns a Library. userDir may be empty or missing; files
// found there take precedence over built-in ones.
func NewLibrary(userDir string, gen *Generator) *Library {
	if gen == nil {
		gen = NewGenerator()
	}
	l := &Library{gen: gen}
	if userDir != "" {
		if info, err := os.Stat(userDir); err == nil && info.IsDir() {
			l.sources = append(l.sources, os.DirFS(userDir))
		}
	}
	l.sources = append(l.sources, builtin())
	return l
}

// LanguageFromString normalizes a language tag for the given mode. Zen
// mode needs no language and yields "".
func LanguageFromString(lang string, mode model.Mode) string {
	if mode == model.ModeZen {
		return ""
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	lang = strings.TrimSuffix(lang, ".txt")
	if lang == "" {
		return DefaultLang
	}
	return lang
}

// ValidateConfig rejects impossible settings and normalizes options that do
// not apply to the chosen mode, reporting them as a warning.
func ValidateConfig(cfg model.Config) model.Response[model.Config] {
	if cfg.Mode == model.ModeWords && cfg.Words < 1 {
		return model.Fail[model.Config](fmt.Errorf("%w: word count must be greater than 0", model.ErrConfig))
	}
	if cfg.TimeLimit < 0 {
		return model.Fail[model.Config](fmt.Errorf("%w: time limit must be greater than 0", model.ErrConfig))
	}
	cfg.Lang = LanguageFromString(cfg.Lang, cfg.Mode)

	var notes []string
	switch cfg.Mode {
	case model.ModeQuote:
		if cfg.Punctuation || cfg.Numbers {
			notes = append(notes, "punctuation and numbers are ignored in quote mode")
			cfg.Punctuation = false
			cfg.Numbers = false
		}
	case model.ModeZen:
		if cfg.Death {
			notes = append(notes, "sudden death has no effect in zen mode")
			cfg.Death = false
		}
		if cfg.File != "" {
			notes = append(notes, "language file is ignored in zen mode")
			cfg.File = ""
		}
		cfg.Punctuation = false
		cfg.Numbers = false
	}
	if len(notes) > 0 {
		return model.Warn(cfg, strings.Join(notes, "; "))
	}
	return model.Ok(cfg)
}

// ListLanguages returns the sorted language tags that have a word list.
func (l *Library) ListLanguages() model.Response[[]string] {
	seen := map[string]struct{}{}
	for _, src := range l.sources {
		entries, err := fs.ReadDir(src, wordsDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
				continue
			}
			seen[strings.TrimSuffix(name, ".txt")] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return model.Fail[[]string](fmt.Errorf("%w: no languages found", model.ErrContent))
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return model.Ok(langs)
}

// Generate produces the word sequence for a validated config.
func (l *Library) Generate(cfg model.Config) model.Response[[]string] {
	switch cfg.Mode {
	case model.ModeZen:
		return model.Ok([]string{})
	case model.ModeQuote:
		return l.generateQuote(cfg)
	default:
		return l.generateWords(cfg)
	}
}

func (l *Library) generateWords(cfg model.Config) model.Response[[]string] {
	var (
		lines []string
		err   error
		keep  = keepAll
	)
	if cfg.File != "" {
		lines, err = LoadLines(cfg.File)
	} else {
		lines, err = l.lookup(wordsDir, cfg.Lang)
		keep = FilterForLang(cfg.Lang)
	}
	if err != nil {
		return model.Fail[[]string](err)
	}
	words := splitWords(lines, keep)
	if len(words) == 0 {
		return model.Fail[[]string](fmt.Errorf("%w: word list for %q has no usable words", model.ErrContent, cfg.Lang))
	}
	return model.Ok(l.gen.Words(words, cfg.Words, cfg.Punctuation, cfg.Numbers))
}

func (l *Library) generateQuote(cfg model.Config) model.Response[[]string] {
	if cfg.File != "" {
		quotes, err := LoadLines(cfg.File)
		if err != nil {
			return model.Fail[[]string](err)
		}
		return model.Ok(l.gen.Quote(quotes))
	}
	quotes, err := l.lookup(quotesDir, cfg.Lang)
	if err == nil {
		return model.Ok(l.gen.Quote(quotes))
	}
	if cfg.Lang == DefaultLang || !errors.Is(err, fs.ErrNotExist) {
		return model.Fail[[]string](err)
	}
	quotes, ferr := l.lookup(quotesDir, DefaultLang)
	if ferr != nil {
		return model.Fail[[]string](ferr)
	}
	return model.Warn(l.gen.Quote(quotes), fmt.Sprintf("no quotes for %q; using %q", cfg.Lang, DefaultLang))
}

// lookup loads dir/<lang>.txt from the first source that has it.
func (l *Library) lookup(dir, lang string) ([]string, error) {
	name := path.Join(dir, lang+".txt")
	for _, src := range l.sources {
		if _, err := fs.Stat(src, name); err != nil {
			continue
		}
		return loadFSLines(src, name)
	}
	return nil, fmt.Errorf("%w: language %q not found: %w", model.ErrContent, lang, fs.ErrNotExist)
}
