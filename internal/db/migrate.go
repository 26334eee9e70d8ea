package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationTable = "mailer_goose_db_version"

// Migrate applies every pending schema migration.
func Migrate(ctx context.Context, conn *sql.DB, logger *zap.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{log: logger.Sugar()})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Infof(format, args...)
}

// Fatalf only logs; goose returns the error to Migrate as well.
func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Errorf(format, args...)
}
