// Package pgtest starts a throwaway PostgreSQL for integration tests and
// applies the schema migrations to it.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"mealdelivery/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Tables lists every table in truncation order.
const Tables = "order_line_items, orders, price_items, prices, menu_dishes, menus, dishes, transactions, users"

// Database is a migrated PostgreSQL container.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and migrates it.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	d := &Database{Container: container}
	if err = d.connect(ctx); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return d, nil
}

func (d *Database) connect(ctx context.Context) error {
	dsn, err := d.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err = migrations.Up(ctx, sqlDB); err != nil {
		return err
	}

	d.DB = db
	return nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + Tables + " CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
