// Package bootstrap builds the shared dependencies of the binaries from
// configuration.
package bootstrap

import (
	"github.com/sirupsen/logrus"

	"socialmedia/internal/config"
	"socialmedia/internal/repository"
	"socialmedia/internal/repository/gormstore"
	"socialmedia/internal/repository/sqlite"
)

// OpenStore uses the database/sql repositories for sqlite and gorm for
// postgres. SQL logging is a gorm feature, so it moves sqlite onto gorm too.
func OpenStore(cfg config.Config, logger logrus.FieldLogger) (repository.Store, error) {
	if cfg.Database.Driver == gormstore.DriverSQLite && !cfg.Database.LogSQL {
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		logger.Infof("using sqlite database %s", cfg.Database.Path)
		return sqlite.NewStore(db), nil
	}

	db, err := gormstore.Open(gormstore.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
		LogSQL: cfg.Database.LogSQL,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("using %s database through gorm", cfg.Database.Driver)
	return gormstore.New(db), nil
}
