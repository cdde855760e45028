package migration

import (
	"strings"

	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The embedded migrator is postgres only. Other dialects create
		// their schema out of band.
		if strings.ToLower(cfg.DBType) == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		if !cfg.IsProduction() {
			return seed.EnsureDemoCatalog(conn)
		}
		return nil
	}),
)
