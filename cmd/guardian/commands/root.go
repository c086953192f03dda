package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"guardian/internal/app"
)

var (
	configPath string
	envPath    string
	home       string
	passphrase string
	logLevel   string
	bridgeURL  string

	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:          "guardian",
		Short:        "Personal safety monitoring: fall, scream and heartbeat detection with SOS",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(envPath); err != nil {
				return err
			}
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if flags.Changed("bridge") {
				cfg.Intents.BridgeURL = bridgeURL
			}
			if err := cfg.ResolveHome(); err != nil {
				return err
			}

			logger, err := app.NewLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg, cmd.OutOrStdout(), logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close(context.Background())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", os.Getenv("GUARDIAN_CONFIG"), "YAML config file")
	pf.StringVar(&envPath, "env", ".env", "dotenv file to load (ignored when missing)")
	pf.StringVar(&home, "home", "", "data dir (default ~/.guardian)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase to seal stored data")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&bridgeURL, "bridge", "", "intent bridge base URL (e.g. http://127.0.0.1:8090)")

	root.AddCommand(
		contactsCmd(),
		sosCmd(),
		heartbeatCmd(),
		policeCmd(),
		challengesCmd(),
		runCmd(),
		serveCmd(),
	)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return root.ExecuteContext(ctx)
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
