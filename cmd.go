package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"cropprices/internal/config"
	"cropprices/internal/eventbus"
	"cropprices/internal/pricing"
	"cropprices/internal/ui"
	"cropprices/internal/ui/handlers"
)

// e2eEnv makes the binary announce itself once the program is about to start
const e2eEnv = "CROPPRICES_E2E_TEST"

type rootOptions struct {
	configPath string
	server     string
	timeout    time.Duration
	noSplash   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cropprices",
		Short:         "Browse crops and compare predicted prices with today's",
		Long:          "A terminal UI that lists crops, filters them as you type and shows the predicted and present market price for the one you pick.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: "+config.DefaultPath()+")")
	cmd.Flags().StringVarP(&opts.server, "server", "s", "", "Prediction service base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout, 0 waits indefinitely")
	cmd.Flags().BoolVar(&opts.noSplash, "no-splash", false, "Skip the startup splash")

	cmd.AddCommand(newInitConfigCmd(opts), newVersionCmd())
	return cmd
}

func newInitConfigCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := configService(opts)
			path := svc.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cropprices %s\n", version)
		},
	}
}

func configService(opts *rootOptions) config.ConfigService {
	if opts.configPath != "" {
		return config.NewConfigServiceAt(opts.configPath)
	}
	return config.NewConfigService()
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	svc := configService(opts)

	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = svc.LoadFromPath(opts.configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("server") {
		cfg.Server.URL = opts.server
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Server.Timeout = opts.timeout
	}
	if opts.noSplash {
		cfg.UI.Splash = 0
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	sink := handlers.NewEventHandler(log.Logger)
	sink.Attach(bus)
	defer sink.Detach()

	client := pricing.NewClient(cfg.Server.URL, cfg.Server.Timeout)
	log.Info().
		Str("server", client.BaseURL()).
		Dur("timeout", cfg.Server.Timeout).
		Str("version", version).
		Msg("starting")

	model := ui.NewModel(cfg, client, bus)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if os.Getenv(e2eEnv) != "" {
		fmt.Println("__READY__")
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("program exited with error")
		return fmt.Errorf("error running program: %w", err)
	}

	// Flush the events of the last fetch into the sink before reading totals
	bus.Close()
	stats := sink.Stats()
	log.Info().
		Int("predictions", stats.PredictionsReceived).
		Int("prediction_failures", stats.PredictionsFailed).
		Int("present_failures", stats.PresentFailed).
		Int("cancelled", stats.Cancelled).
		Msg("exited normally")
	return nil
}
