package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/config"
	"github.com/limaJavier/coursetable/pkg/catalog"
)

func newImportCmd(application *app) *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a JSON catalog into the configured SQL database",
		Long: `Validates every record of a JSON catalog and upserts them, by registration
number, into the sqlite or postgres catalog named by catalog.driver and catalog.dsn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if application.cfg.Catalog.Driver == config.MemoryDriver {
				return fmt.Errorf("import needs a SQL catalog; set catalog.driver to %v or %v", config.SqliteDriver, config.PostgresDriver)
			}

			records, err := catalog.RecordsFromJson(catalogFile)
			if err != nil {
				return fmt.Errorf("cannot load catalog %v: %w", catalogFile, err)
			}
			// Reject the whole file on the first malformed record
			for _, record := range records {
				if _, err := record.Section(); err != nil {
					return err
				}
			}

			db, err := catalog.Open(application.cfg.Catalog.Driver, application.cfg.Catalog.DSN, application.logger)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			repository := catalog.NewGormRepository(db)
			if err := repository.Migrate(ctx); err != nil {
				return fmt.Errorf("cannot migrate catalog: %w", err)
			}
			if err := repository.Save(ctx, records); err != nil {
				return fmt.Errorf("cannot save catalog: %w", err)
			}

			application.logger.Info("catalog imported", zap.String("file", catalogFile), zap.Int("records", len(records)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&catalogFile, "file", "f", "", "Path to the JSON catalog")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
