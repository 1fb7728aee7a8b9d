// Package content talks to the headless content repository that stores
// inquiry records alongside the rest of the site's content.
package content

import "time"

// Document is a new document to create in the repository
type Document struct {
	Type   string
	Fields map[string]any
}

// Record is a document as stored by the repository
type Record struct {
	ID        string
	Type      string
	CreatedAt time.Time
	Fields    map[string]any
}
