package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"signal-trader/internal/broker"
	"signal-trader/internal/config"
	"signal-trader/internal/logging"
	"signal-trader/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Broker  broker.Broker
	Journal store.Journal
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Broker: broker.NewPaperBroker(broker.PaperBrokerConfig{
			InitialBalance: cfg.Broker.InitialBalance,
		}),
	}

	journal, err := store.NewSQLiteJournal(cfg.Store.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open signal journal, history will be unavailable")
	} else {
		app.Journal = journal
	}

	rootCmd := &cobra.Command{
		Use:   "signal-trader",
		Short: "Chat signal options trader",
		Long: `signal-trader converts chat-style option trade announcements
("BTO INTC 50C 12/31 @0.45 (SL @.35)") into sized, priced orders and
executes them against a paper broker.

Use 'signal-trader parse' to inspect a message, 'plan' to see derived
sizing, and 'process' to run the full pipeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/signal-trader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newParseCmd(app))
	rootCmd.AddCommand(newPlanCmd(app))
	rootCmd.AddCommand(newProcessCmd(app))
	rootCmd.AddCommand(newWatchCmd(app))
	rootCmd.AddCommand(newJournalCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("signal-trader v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Printf("Max order value:       %.2f\n", app.Config.Risk.MaxOrderValue)
			output.Printf("High risk order value: %.2f\n", app.Config.Risk.HighRiskOrderValue)
			output.Printf("Buy limit percent:     %.2f%%\n", app.Config.Risk.BuyLimitPercent*100)
			output.Printf("Stop loss percent:     %.2f%%\n", app.Config.Risk.StopLossPercent*100)
			output.Printf("Broker mode:           %s\n", app.Config.Broker.Mode)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
