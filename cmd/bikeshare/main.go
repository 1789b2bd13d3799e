// Package main provides the CLI entrypoint for bikeshare.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/pager"
	"github.com/verte-zerg/bikeshare/internal/session"
)

const (
	defaultDataDir  = "."
	defaultLogLevel = "warn"
)

var (
	exploreDataDir  string
	explorePager    bool
	exploreVerbose  bool
	exploreLogLevel = defaultLogLevel

	citiesDataDir string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bike-share trip data",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runExploreCmd,
	}

	rootCmd.Flags().StringVar(&exploreDataDir, "data-dir", defaultDataDir, "directory holding chicago.csv, new_york_city.csv and washington.csv")
	rootCmd.Flags().BoolVar(&explorePager, "pager", false, "show each report in a scrollable pager")
	rootCmd.Flags().BoolVarP(&exploreVerbose, "verbose", "v", false, "enable debug logging on stderr")

	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &exploreDataDir, fileCfg.Explore.DataDir)
	applyBoolConfig(cmd, "pager", &explorePager, fileCfg.Explore.Pager)
	if fileCfg.Explore.LogLevel != nil {
		exploreLogLevel = *fileCfg.Explore.LogLevel
	}
	if exploreVerbose {
		exploreLogLevel = "debug"
	}
	if err := setupLogging(cmd.ErrOrStderr(), exploreLogLevel); err != nil {
		return err
	}

	var display session.DisplayFunc
	if explorePager {
		if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
			display = pager.Show
		} else {
			log.Warn("pager needs an interactive terminal; printing reports instead")
		}
	}

	log.WithField("data_dir", exploreDataDir).Debug("starting session")
	s := session.New(cmd.InOrStdin(), cmd.OutOrStdout(), dataset.Loader{Dir: exploreDataDir}, display)
	return s.Run(context.Background())
}

func newCitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List supported cities and their data files",
		Args:  cobra.NoArgs,
		RunE:  runCitiesCmd,
	}
	cmd.Flags().StringVar(&citiesDataDir, "data-dir", defaultDataDir, "directory holding the city CSV files")
	return cmd
}

func runCitiesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &citiesDataDir, fileCfg.Explore.DataDir)
	return listCities(cmd.OutOrStdout(), dataset.Loader{Dir: citiesDataDir})
}

func listCities(w io.Writer, loader dataset.Loader) error {
	missing := 0
	for _, city := range model.Cities {
		path := loader.Path(city)
		status := "ok"
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			status = "missing"
			missing++
		}
		if _, err := fmt.Fprintf(w, "%-14s %-8s %s\n", city, status, path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if missing == len(model.Cities) {
		return fmt.Errorf("no city data found in %s", loader.Dir)
	}
	return nil
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
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func setupLogging(w io.Writer, level string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetOutput(w)
	log.SetLevel(parsed)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bikeshare configuration
# Uncomment a value to enable it. CLI flags override config values.

[explore]
# data-dir = %q          # Directory holding the city CSV files
# pager = false           # Show each report in a scrollable pager
# log-level = %q       # panic, fatal, error, warn, info, debug or trace
`,
		defaultDataDir,
		defaultLogLevel,
	)
}
