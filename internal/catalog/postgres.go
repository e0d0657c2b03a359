package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pgUndefinedTable is the SQLSTATE postgres reports for a missing relation.
const pgUndefinedTable = "42P01"

// Item is one catalog row. Position fixes the canonical order.
type Item struct {
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	Name     string `gorm:"not null;uniqueIndex"`
}

func (Item) TableName() string { return "catalog_items" }

// PostgresProvider reads the catalog from the catalog_items table.
type PostgresProvider struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn. gorm's own logger is silenced; callers log
// failures themselves.
func OpenPostgres(dsn string) (*PostgresProvider, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %w", ErrCatalogUnavailable, err)
	}
	return NewPostgresProvider(db), nil
}

func NewPostgresProvider(db *gorm.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) FetchCatalog(ctx context.Context) ([]string, error) {
	var names []string
	err := p.db.WithContext(ctx).
		Model(&Item{}).
		Order("position").
		Pluck("name", &names).Error
	if err != nil {
		return nil, classify(err)
	}
	return names, nil
}

// Import replaces the stored catalog with names, keeping their order.
func (p *PostgresProvider) Import(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return ErrEmptyCatalog
	}
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&Item{}); err != nil {
			return fmt.Errorf("migrate catalog: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Item{}).Error; err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		rows := make([]Item, len(names))
		for i, name := range names {
			rows[i] = Item{Position: i + 1, Name: name}
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("insert catalog: %w", err)
		}
		return nil
	})
}

// Close releases the underlying connection pool.
func (p *PostgresProvider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%w: table catalog_items missing", ErrCatalogUnavailable)
	}
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}
