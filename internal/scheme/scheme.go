// Package scheme loads color schemes for the typing interface.
package scheme

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typecrab/internal/model"
)

// DefaultName is the scheme used when none is configured.
const DefaultName = "monokai"

//go:embed schemes/*.toml
var embedded embed.FS

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// File is the TOML layout of a scheme file.
type File struct {
	Name   string `toml:"name"`
	Colors Colors `toml:"colors"`
}

// Colors maps interface roles to hex (#rrggbb) or ANSI (0-255) colors.
type Colors struct {
	Correct   string `toml:"correct"`
	Incorrect string `toml:"incorrect"`
	Pending   string `toml:"pending"`
	Current   string `toml:"current"`
	Cursor    string `toml:"cursor"`
	Status    string `toml:"status"`
	Warning   string `toml:"warning"`
	Title     string `toml:"title"`
}

// Scheme holds the styles derived from a scheme file.
type Scheme struct {
	Name      string
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Pending   lipgloss.Style
	Current   lipgloss.Style
	Cursor    lipgloss.Style
	Status    lipgloss.Style
	Warning   lipgloss.Style
	Title     lipgloss.Style
	// Accent is the raw status color, used for the progress bar.
	Accent string
}

// Catalog resolves scheme names from a user directory and the built-ins.
type Catalog struct {
	sources []fs.FS
}

// NewCatalog returns a Catalog. Files in userDir shadow built-in schemes.
func NewCatalog(userDir string) *Catalog {
	c := &Catalog{}
	if userDir != "" {
		if info, err := os.Stat(userDir); err == nil && info.IsDir() {
			c.sources = append(c.sources, os.DirFS(userDir))
		}
	}
	sub, err := fs.Sub(embedded, "schemes")
	if err != nil {
		panic(err)
	}
	c.sources = append(c.sources, sub)
	return c
}

// List returns the sorted names of every available scheme.
func (c *Catalog) List() model.Response[[]string] {
	seen := map[string]struct{}{}
	for _, src := range c.sources {
		matches, err := fs.Glob(src, "*.toml")
		if err != nil {
			continue
		}
		for _, m := range matches {
			seen[strings.TrimSuffix(m, ".toml")] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return model.Fail[[]string](fmt.Errorf("%w: no schemes found", model.ErrScheme))
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return model.Ok(names)
}

// Load reads a scheme by name.
func (c *Catalog) Load(name string) (Scheme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	file := path.Clean(name) + ".toml"
	for _, src := range c.sources {
		data, err := fs.ReadFile(src, file)
		if err != nil {
			continue
		}
		return Parse(name, data)
	}
	return Scheme{}, fmt.Errorf("%w: scheme %q not found", model.ErrScheme, name)
}

// LoadFile reads a scheme from an arbitrary path.
func LoadFile(p string) (Scheme, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Scheme{}, fmt.Errorf("%w: %v", model.ErrScheme, err)
	}
	return Parse(strings.TrimSuffix(path.Base(p), ".toml"), data)
}

// Parse decodes scheme TOML. fallbackName is used when the file has no name.
func Parse(fallbackName string, data []byte) (Scheme, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Scheme{}, fmt.Errorf("%w: failed to decode %s: %v", model.ErrScheme, fallbackName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Scheme{}, fmt.Errorf("%w: %s: unknown key %q", model.ErrScheme, fallbackName, undecoded[0].String())
	}
	if f.Name == "" {
		f.Name = fallbackName
	}
	return build(f)
}

func build(f File) (Scheme, error) {
	c := f.Colors
	required := []struct {
		role  string
		value string
	}{
		{"correct", c.Correct},
		{"incorrect", c.Incorrect},
		{"pending", c.Pending},
	}
	for _, r := range required {
		if r.value == "" {
			return Scheme{}, fmt.Errorf("%w: %s: missing color %q", model.ErrScheme, f.Name, r.role)
		}
	}
	// Optional roles borrow from the required ones.
	if c.Current == "" {
		c.Current = c.Correct
	}
	if c.Cursor == "" {
		c.Cursor = c.Current
	}
	if c.Status == "" {
		c.Status = c.Pending
	}
	if c.Warning == "" {
		c.Warning = c.Incorrect
	}
	if c.Title == "" {
		c.Title = c.Status
	}
	for role, value := range map[string]string{
		"correct": c.Correct, "incorrect": c.Incorrect, "pending": c.Pending,
		"current": c.Current, "cursor": c.Cursor, "status": c.Status,
		"warning": c.Warning, "title": c.Title,
	} {
		if !validColor(value) {
			return Scheme{}, fmt.Errorf("%w: %s: invalid %s color %q", model.ErrScheme, f.Name, role, value)
		}
	}

	fg := func(v string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(v))
	}
	return Scheme{
		Name:      f.Name,
		Correct:   fg(c.Correct),
		Incorrect: fg(c.Incorrect),
		Pending:   fg(c.Pending),
		Current:   fg(c.Current),
		Cursor:    fg(c.Cursor).Underline(true),
		Status:    fg(c.Status),
		Warning:   fg(c.Warning).Bold(true),
		Title:     fg(c.Title).Bold(true),
		Accent:    c.Status,
	}, nil
}

func validColor(v string) bool {
	if hexColor.MatchString(v) {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 0 && n <= 255
}
