package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio/internal/config"
	"portfolio/internal/content"
	"portfolio/internal/domain"
	"portfolio/internal/metrics"
	apperrors "portfolio/pkg/errors"
)

// DocumentStore is a content repository backed by the application database
type DocumentStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewDocumentStore creates a new document store
func NewDocumentStore(db *gorm.DB, timeout time.Duration) *DocumentStore {
	return &DocumentStore{db: db, timeout: timeout}
}

// Name returns the backend name
func (s *DocumentStore) Name() string {
	return config.BackendDatabase
}

// Create inserts a document and returns it with its generated ID
func (s *DocumentStore) Create(ctx context.Context, doc content.Document) (rec *content.Record, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryCall(s.Name(), time.Since(start), err)
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row := &domain.Document{
		Type:   doc.Type,
		Fields: datatypes.JSONMap(doc.Fields),
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to insert %s document: %w", doc.Type, err)
	}

	log.Printf("[DB] Created %s document id=%s", row.Type, row.ID)
	return &content.Record{
		ID:        row.ID,
		Type:      row.Type,
		CreatedAt: row.CreatedAt,
		Fields:    map[string]any(row.Fields),
	}, nil
}

// Get returns a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*content.Record, error) {
	var row domain.Document
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "document not found: "+id, err)
		}
		return nil, err
	}
	return &content.Record{
		ID:        row.ID,
		Type:      row.Type,
		CreatedAt: row.CreatedAt,
		Fields:    map[string]any(row.Fields),
	}, nil
}

// Ping checks that the database is reachable
func (s *DocumentStore) Ping(ctx context.Context) error {
	return Ping(ctx, s.db)
}
