// Package cli provides the command-line interface for the bot.
package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"finbot/internal/bot"
	"finbot/internal/config"
	"finbot/internal/health"
	"finbot/internal/llm"
	"finbot/internal/logging"
	"finbot/internal/market"
	"finbot/internal/news"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-29"
)

// NewRootCmd creates the root command. Running it with no subcommand starts
// the bot and blocks until SIGINT/SIGTERM.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finbot",
		Short: "Discord market assistant bot",
		Long: `finbot is a Discord bot with slash commands for market data,
financial news, the economic calendar, and free-form model questions.

Configuration lives in ~/.config/finbot/config.toml; the Discord token,
Gemini API key, and Finnhub API key may also come from the environment
(DISCORD_TOKEN, GEMINI_API_KEY, FINNHUB_API_KEY).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBot,
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/finbot)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runBot(cmd *cobra.Command, _ []string) error {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	logCfg.File = cfg.Logging.File
	logger := logging.NewLoggerWithConfig(logCfg)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logging.SetDebugLevel()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := bot.Services{
		Market: market.NewClient(cfg.Finnhub.APIKey, market.WithBaseURL(cfg.Finnhub.CalendarURL)),
		News:   news.NewFetcher(),
	}
	if cfg.Finnhub.APIKey == "" {
		logger.Warn().Msg("Finnhub API key not set; market commands will fail upstream")
	}
	if cfg.Gemini.APIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		svc.LLM = gemini
		logger.Debug().Str("model", cfg.Gemini.Model).Msg("Gemini client initialized")
	} else {
		logger.Warn().Msg("Gemini API key not set; /ask is disabled")
	}

	b, err := bot.New(bot.Config{
		Token:         cfg.Discord.Token,
		GuildID:       cfg.Discord.GuildID,
		StockQueryURL: cfg.News.StockQueryURL,
		EconomicURL:   cfg.News.EconomicURL,
	}, svc, logger)
	if err != nil {
		return err
	}

	// The liveness shim starts before the gateway connect call blocks.
	health.Start(cfg.Health.Addr, logger)

	return b.Run(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("finbot v%s (built %s)\n", Version, BuildDate)
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println(config.DefaultConfigDir())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config")
			if configDir == "" {
				configDir = config.DefaultConfigDir()
			}
			if err := config.WriteTemplate(configDir); err != nil {
				return err
			}
			fmt.Printf("Config template written to %s\n", configDir)
			return nil
		},
	})

	return cmd
}
