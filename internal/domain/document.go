package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document is a content repository document stored by the database backend
type Document struct {
	ID        string            `gorm:"primaryKey;size:36" json:"_id"`
	Type      string            `gorm:"not null;index" json:"_type"`
	Fields    datatypes.JSONMap `gorm:"not null" json:"fields"`
	CreatedAt time.Time         `json:"_createdAt"`
}

// TableName specifies the table name for Document
func (Document) TableName() string {
	return "documents"
}

// BeforeCreate hook
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return nil
}
