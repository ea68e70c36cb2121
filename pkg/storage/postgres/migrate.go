package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate"
	_ "github.com/golang-migrate/migrate/database/postgres"
	_ "github.com/golang-migrate/migrate/source/file"
	"go.uber.org/zap"
)

// Migrate applies every pending up migration found in dir.
func Migrate(dsn, dir string, log *zap.Logger) error {
	const op = "postgres.Migrate"

	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return fmt.Errorf("%s: init: %w", op, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("migrate close failed", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema up to date")
			return nil
		}
		return fmt.Errorf("%s: up: %w", op, err)
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
