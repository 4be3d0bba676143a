package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/gateway"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/session"
	"github.com/zhubert/parley/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	backendURL            string
	modelOverride         string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "TUI chat client for a conversational agent backend",
	Long: `Parley is a terminal chat client for a conversational agent backend.
It renders assistant replies and tool output in the terminal, gates
tool actions behind explicit confirmation, and keeps an eye on
backend health while you work.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVar(&backendURL, "backend", "", "Backend URL (overrides config)")
	rootCmd.Flags().StringVar(&modelOverride, "model", "", "Model to use (overrides config)")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if backendURL != "" {
		cfg.SetBackendURL(backendURL)
	}
	if modelOverride != "" {
		cfg.SetModel(modelOverride)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	defer logger.Close()

	ui.ApplyTheme(ui.ThemeName(cfg.GetTheme()))

	// Clipboard support is optional; copying just fails later if this does
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable: %v", err)
	}

	var notify func(prompt string)
	if cfg.GetNotificationsEnabled() {
		notify = func(prompt string) {
			if err := notification.ConfirmationRequested(prompt); err != nil {
				logger.Debug("notification failed: %v", err)
			}
		}
	}

	sess := session.New(session.Config{
		Gateway:      gateway.NewClient(cfg.GetBackendURL()),
		Store:        chat.NewStore(),
		Model:        cfg.GetModel(),
		Notify:       notify,
		ProbeTimeout: cfg.PingTimeout(),
	})

	m := app.New(cfg, sess, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
