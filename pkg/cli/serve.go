package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getlistd/listd/pkg/cliconfig"
	"github.com/getlistd/listd/pkg/server"
)

var (
	serveConfigFile string
	serveHost       string
	servePort       int
	serveAPIKey     string
	serveLogLevel   string
	serveLogFormat  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the listd daemon",
	Long: `Start the HTTP daemon serving the list API.

Lists are seeded from the configuration file and live in memory; the
daemon is the single owner of all ids. Stop it with Ctrl-C for a graceful
shutdown.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Configuration file (default: $LISTD_CONFIG or ./listd.yaml)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Bind host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Bind port (overrides config)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Require this key in the X-Listd-API-Key header")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "", "Log format: text or json")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, path, err := resolveConfig(serveConfigFile)
	if err != nil {
		return describeConfigError(path, err)
	}

	// Flags and environment override the file.
	if cfg.Server.Host == "" {
		cfg.Server.Host = cliconfig.GetHost()
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = cliconfig.GetPort()
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if key := cliconfig.GetAPIKey(); key != "" && cfg.Server.APIKey == "" {
		cfg.Server.APIKey = key
	}
	if serveAPIKey != "" {
		cfg.Server.APIKey = serveAPIKey
	}

	stores, registry, err := server.BuildStores(cfg)
	if err != nil {
		return fmt.Errorf("seed lists: %w", err)
	}

	log := buildLogger(cfg, serveLogLevel, serveLogFormat)
	if path != "" {
		log.Info("configuration loaded", "file", path)
	}

	srv := server.New(cfg.Server, stores, registry,
		server.WithLogger(log),
		server.WithVersion(Version),
		server.WithAPIKey(cfg.Server.APIKey),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Printf("listd daemon listening on http://%s\n", srv.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
