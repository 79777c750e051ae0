package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openclaw/clawstats/internal/analyzer"
	"github.com/openclaw/clawstats/internal/config"
	"github.com/openclaw/clawstats/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path
	sessionsDir string
	configPath  string

	// Filtering
	days int

	// Output related
	outputFormat string
	jsonOutput   bool
	detail       bool

	// Live mode
	watch bool

	rootCmd = &cobra.Command{
		Use:   "clawstats [flags]",
		Short: "OpenClaw session token usage reports",
		Long: `clawstats analyzes daily token consumption from OpenClaw session transcripts.

It scans session JSONL files, extracts billed usage from assistant messages,
and produces breakdowns by date, model, channel, session, and hour of day.

Examples:
  clawstats                              # Last 7 days, text report
  clawstats --days 30                    # Last 30 days
  clawstats --detail                     # Include hourly breakdown
  clawstats --json                       # Machine-readable output
  clawstats --sessions-dir /path/to/dir  # Analyze another directory
  clawstats --watch                      # Re-run the report on changes`,
		RunE: runReport,
	}
)

const (
	defaultLogFile     = "~/.clawstats/logs/app.log"
	defaultSessionsDir = "~/.openclaw/agents/main/sessions"
	defaultDays        = 7
)

func init() {
	rootCmd.Flags().StringVar(&sessionsDir, "sessions-dir", defaultSessionsDir,
		"Session transcript directory path")
	rootCmd.Flags().IntVar(&days, "days", defaultDays,
		"Only include files modified within the last N days (0 = all)")
	rootCmd.Flags().BoolVar(&detail, "detail", false,
		"Include the hourly breakdown")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format (text, json)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Shorthand for --output json")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Keep running and refresh the report when transcripts change")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.clawstats.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// File values apply only where the flag was left at its default.
	if cfg.SessionsDir != "" && !cmd.Flags().Changed("sessions-dir") {
		sessionsDir = cfg.SessionsDir
	}
	if cfg.Days > 0 && !cmd.Flags().Changed("days") {
		days = cfg.Days
	}
	if cfg.Output != "" && !cmd.Flags().Changed("output") {
		outputFormat = cfg.Output
	}
	if jsonOutput {
		outputFormat = "json"
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	util.InitLogger(logLevel, expandPath(logFile), debug)

	a := analyzer.New(&analyzer.Config{
		SessionsDir:  expandPath(sessionsDir),
		Days:         days,
		OutputFormat: outputFormat,
		Detail:       detail,
	})

	if watch {
		return a.Watch()
	}
	return a.Run()
}

func Execute() error {
	return rootCmd.Execute()
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
