// Package sqlstore implements [docstore.Backend] on a relational database
// through GORM. Every collection shares one "documents" table keyed by
// (collection, id) with the record body in a JSON column, so PostgreSQL and
// SQLite deployments need no per-entity schema.
//
//	store, err := sqlstore.Open(sqlstore.Config{Driver: sqlstore.DriverPostgres, DSN: dsn})
//	if err != nil {
//		return err
//	}
//	defer store.Close(ctx)
//	if err := store.Migrate(ctx); err != nil {
//		return err
//	}
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

type Config struct {
	Driver Driver
	DSN    string
}

// Document is the row layout of the documents table.
type Document struct {
	Collection string         `gorm:"primaryKey;size:64"`
	ID         string         `gorm:"primaryKey;size:191"`
	Body       datatypes.JSON `gorm:"not null"`
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}

// Store is a docstore.Backend backed by GORM.
type Store struct {
	db *gorm.DB
}

var _ docstore.Backend = (*Store)(nil)

func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// Migrate creates the documents table if needed. Safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&Document{})
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) List(ctx context.Context, coll models.Collection) ([]docstore.Document, error) {
	var rows []Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", coll.String()).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", coll, err)
	}

	docs := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.decode()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) Get(ctx context.Context, coll models.Collection, id string) (docstore.Document, error) {
	var row Document
	err := s.db.WithContext(ctx).First(&row, "collection = ? AND id = ?", coll.String(), id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, fmt.Errorf("failed to get %s/%s: %w", coll, id, err)
	}
	return row.decode()
}

func (s *Store) Put(ctx context.Context, coll models.Collection, id string, fields map[string]any) error {
	row, err := encode(coll, id, fields)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

// Create stores the document under a new random UUID.
func (s *Store) Create(ctx context.Context, coll models.Collection, fields map[string]any) (string, error) {
	row, err := encode(coll, uuid.NewString(), fields)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to create %s document: %w", coll, err)
	}
	return row.ID, nil
}

func (s *Store) Delete(ctx context.Context, coll models.Collection, id string) error {
	return s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", coll.String(), id).
		Delete(&Document{}).Error
}

func encode(coll models.Collection, id string, fields map[string]any) (Document, error) {
	body := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != "id" {
			body[k] = v
		}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode %s/%s: %w", coll, id, err)
	}
	return Document{Collection: coll.String(), ID: id, Body: datatypes.JSON(data)}, nil
}

func (d Document) decode() (docstore.Document, error) {
	fields := map[string]any{}
	if len(d.Body) > 0 {
		if err := json.Unmarshal(d.Body, &fields); err != nil {
			return docstore.Document{}, fmt.Errorf("corrupt document %s/%s: %w", d.Collection, d.ID, err)
		}
	}
	return docstore.Document{ID: d.ID, Fields: fields}, nil
}
