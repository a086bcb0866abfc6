// Package main provides the CLI entrypoint for typecrab.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/typecrab/internal/config"
	"github.com/verte-zerg/typecrab/internal/content"
	"github.com/verte-zerg/typecrab/internal/engine"
	"github.com/verte-zerg/typecrab/internal/logging"
	"github.com/verte-zerg/typecrab/internal/model"
	"github.com/verte-zerg/typecrab/internal/scheme"
	"github.com/verte-zerg/typecrab/internal/tui"
)

const (
	defaultCount    = 25
	defaultLogLevel = "info"
)

var errorLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render("error:")

var (
	listLanguages bool
	listSchemes   bool

	modeWords bool
	modeQuote bool
	modeZen   bool

	testPunctuation bool
	testNumbers     bool
	testStrict      bool
	testDeath       bool
	testLanguage    string
	testFile        string
	testCount       int
	testTime        int

	schemeName string
	schemeFile string
	logLevel   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logErrf("%s %v\n", errorLabel, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typecrab",
		Short:         "A minimalistic, customizable typing test",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTestCmd,
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&listLanguages, "list-languages", false, "list available languages")
	flags.BoolVar(&listSchemes, "list-schemes", false, "list available color schemes")
	flags.BoolVarP(&modeWords, "words", "w", false, "enable words mode (default)")
	flags.BoolVarP(&modeQuote, "quote", "q", false, "enable quote mode")
	flags.BoolVarP(&modeZen, "zen", "z", false, "enable zen mode")
	flags.BoolVarP(&testPunctuation, "punctuation", "p", false, "include punctuation in test text")
	flags.BoolVarP(&testNumbers, "numbers", "n", false, "include numbers in test text")
	flags.BoolVar(&testStrict, "strict", false, "disable backtracking of completed words")
	flags.BoolVar(&testDeath, "death", false, "end the test on the first mistake")
	flags.StringVarP(&testLanguage, "language", "l", content.DefaultLang, "test language")
	flags.StringVar(&testFile, "language-file", "", "custom word list file")
	flags.StringVarP(&schemeName, "scheme", "s", scheme.DefaultName, "color scheme")
	flags.StringVar(&schemeFile, "scheme-file", "", "custom color scheme file")
	flags.IntVarP(&testCount, "count", "c", defaultCount, "word count")
	flags.IntVarP(&testTime, "time", "t", 0, "time limit in seconds")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error, off)")

	rootCmd.MarkFlagsMutuallyExclusive("words", "quote", "zen")
	rootCmd.MarkFlagsMutuallyExclusive("language", "language-file")
	rootCmd.MarkFlagsMutuallyExclusive("scheme", "scheme-file")
	rootCmd.MarkFlagsMutuallyExclusive("list-languages", "list-schemes")

	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFileConfig(cmd, fileCfg)

	logger, err := logging.New(config.DefaultLogPath(), logLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	lib := content.NewLibrary(config.DefaultContentDir(), content.NewGenerator())
	catalog := scheme.NewCatalog(config.DefaultSchemeDir())

	switch {
	case listLanguages:
		return printList(cmd, lib.ListLanguages())
	case listSchemes:
		return printList(cmd, catalog.List())
	}

	sch, err := loadScheme(catalog)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	validated := content.ValidateConfig(cfg)
	cfg, _, err = validated.Unwrap()
	if err != nil {
		return err
	}
	words, warning, err := model.Then(validated, lib.Generate).Unwrap()
	if err != nil {
		return err
	}
	if warning != "" {
		logger.Warn("test settings adjusted", zap.String("warning", warning))
	}

	clock := engine.SystemClock
	test := engine.New(words, cfg, clock)
	m := tui.NewModel(test, sch, warning, clock, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func printList(cmd *cobra.Command, resp model.Response[[]string]) error {
	items, _, err := resp.Unwrap()
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), item); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func loadScheme(catalog *scheme.Catalog) (scheme.Scheme, error) {
	if schemeFile != "" {
		return scheme.LoadFile(schemeFile)
	}
	return catalog.Load(schemeName)
}

// buildConfig assembles the test settings from flags, which already carry
// any config file values.
func buildConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	mode, err := resolveMode(cmd, fileCfg.Test.Mode)
	if err != nil {
		return model.Config{}, err
	}
	if cmd.Flags().Changed("time") && testTime <= 0 {
		return model.Config{}, fmt.Errorf("%w: --time must be > 0", model.ErrConfig)
	}
	return model.Config{
		Mode:        mode,
		Lang:        content.LanguageFromString(testLanguage, mode),
		File:        testFile,
		Words:       testCount,
		TimeLimit:   testTime,
		Punctuation: testPunctuation,
		Numbers:     testNumbers,
		Backtrack:   !testStrict,
		Death:       testDeath,
	}, nil
}

// resolveMode prefers the mode flags over the config file mode.
func resolveMode(cmd *cobra.Command, fileMode *string) (model.Mode, error) {
	switch {
	case modeQuote:
		return model.ModeQuote, nil
	case modeZen:
		return model.ModeZen, nil
	case cmd.Flags().Changed("words"):
		return model.ModeWords, nil
	case fileMode != nil:
		return model.ParseMode(*fileMode)
	default:
		return model.ModeWords, nil
	}
}

func applyFileConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	t := fileCfg.Test
	applyStringConfig(cmd, "language", &testLanguage, t.Lang)
	applyIntConfig(cmd, "count", &testCount, t.Count)
	applyIntConfig(cmd, "time", &testTime, t.Time)
	applyBoolConfig(cmd, "punctuation", &testPunctuation, t.Punctuation)
	applyBoolConfig(cmd, "numbers", &testNumbers, t.Numbers)
	applyBoolConfig(cmd, "strict", &testStrict, t.Strict)
	applyBoolConfig(cmd, "death", &testDeath, t.Death)
	if !cmd.Flags().Changed("scheme-file") {
		applyStringConfig(cmd, "scheme", &schemeName, fileCfg.Scheme)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.LogLevel)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typecrab configuration
# Uncomment a value to enable it. CLI flags override config values.

# scheme = %q         # Color scheme name
# log-level = %q         # debug, info, warn, error or off

[test]
# mode = "words"            # words, quote or zen
# lang = %q                 # Test language
# count = %d                # Word count in words mode
# time = 30                 # Time limit in seconds
# punctuation = false       # Include punctuation
# numbers = false           # Include numbers
# strict = false            # Disable backtracking of completed words
# death = false             # End the test on the first mistake
`,
		scheme.DefaultName,
		defaultLogLevel,
		content.DefaultLang,
		defaultCount,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
