package commands

import (
	"github.com/deppfellow/iban-checker/internal/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			version, err := database.Migrate(cmd.Context(), log, cfg.Database.DSN())
			if err != nil {
				log.Error().Err(err).Msg("failed to migrate database")
				return err
			}

			log.Info().Int32("version", version).Msg("database migrated")
			return nil
		},
	}
}
