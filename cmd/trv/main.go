package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/persistorai/trv/internal/config"
)

// Build-time variables set via ldflags.
var (
	commit    = ""
	buildDate = ""
)

var (
	flagGraph       string
	flagSource      string
	flagDatabaseURL string
	flagTenant      string
	flagLogLevel    string
	flagFmt         string
	flagMetrics     bool
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("trv version %s (commit: %s, built: %s)", config.Version, commit, buildDate)
	}
	return fmt.Sprintf("trv version %s", config.Version)
}

type configFile struct {
	// Flat format
	Source      string `yaml:"source"`
	Graph       string `yaml:"graph"`
	DatabaseURL string `yaml:"database_url"`
	TenantID    string `yaml:"tenant_id"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	Source      string `yaml:"source"`
	Graph       string `yaml:"graph"`
	DatabaseURL string `yaml:"database_url"`
	TenantID    string `yaml:"tenant_id"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "trv",
		Short:        "trv runs traversal plans against property graphs",
		Version:      versionString(),
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagGraph, "graph", "", "Graph document, .json or .yaml (env: GRAPH_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "Graph source: file|postgres (env: GRAPH_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL URL for snapshots (env: DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagTenant, "tenant", "", "Tenant UUID for snapshots (env: TENANT_ID)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (env: LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")
	rootCmd.PersistentFlags().BoolVar(&flagMetrics, "metrics", false, "Print collected metrics to stderr on exit")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newInspectCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if flagMetrics {
		if mErr := dumpMetrics(os.Stderr); mErr != nil {
			fmt.Fprintf(os.Stderr, "Error: dumping metrics: %v\n", mErr)
		}
	}

	if err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig builds the configuration. Flags take precedence, then env,
// then the active profile of ~/.trv/config.yaml.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	p := loadProfile()

	fill(&cfg.GraphSource, "GRAPH_SOURCE", p.Source, flagSource)
	fill(&cfg.GraphFile, "GRAPH_FILE", p.Graph, flagGraph)
	fill(&cfg.TenantID, "TENANT_ID", p.TenantID, flagTenant)
	fill(&cfg.LogLevel, "LOG_LEVEL", "", flagLogLevel)

	dbURL := cfg.DatabaseURL.Value()
	fill(&dbURL, "DATABASE_URL", p.DatabaseURL, flagDatabaseURL)
	cfg.DatabaseURL = config.Secret(dbURL)

	return cfg, nil
}

// fill applies a profile value when env is unset, then a non-empty flag.
func fill(dst *string, env, profile, flag string) {
	if os.Getenv(env) == "" && profile != "" {
		*dst = profile
	}
	override(dst, flag)
}

// loadProfile reads the active profile, falling back to the flat format.
// A missing or unreadable file yields an empty profile.
func loadProfile() configProfile {
	home, err := os.UserHomeDir()
	if err != nil {
		return configProfile{}
	}

	data, err := os.ReadFile(filepath.Join(home, ".trv", "config.yaml"))
	if err != nil {
		return configProfile{}
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return configProfile{}
	}

	resolved := configProfile{
		Source:      cfg.Source,
		Graph:       cfg.Graph,
		DatabaseURL: cfg.DatabaseURL,
		TenantID:    cfg.TenantID,
	}
	if cfg.Profiles == nil {
		return resolved
	}

	name := cfg.ActiveProfile
	if name == "" {
		name = "default"
	}

	p, ok := cfg.Profiles[name]
	if !ok {
		return resolved
	}

	override(&resolved.Source, p.Source)
	override(&resolved.Graph, p.Graph)
	override(&resolved.DatabaseURL, p.DatabaseURL)
	override(&resolved.TenantID, p.TenantID)

	return resolved
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
