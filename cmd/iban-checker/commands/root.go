// Package commands implements the iban-checker command line.
package commands

import (
	"fmt"

	"github.com/deppfellow/iban-checker/internal/config"
	"github.com/deppfellow/iban-checker/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "iban-checker",
		Short:        "Validate Montenegrin IBANs over HTTP and from the command line",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), migrateCmd(), checkCmd(), reportCmd())
	return root
}

// bootstrap loads the configuration and builds the application logger.
// Callers must Shutdown the returned service.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}
