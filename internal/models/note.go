package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Note represents an indexed vault note.
type Note struct {
	ID surrealmodels.RecordID `json:"id"`

	// Path is the vault-relative file path, also used as the record ID.
	Path  string `json:"path"`
	Title string `json:"title"`

	// Hash is the content hash used to skip unchanged files on rescan.
	Hash  string    `json:"hash"`
	Mtime time.Time `json:"mtime"`

	// Links holds the resolved outgoing wiki-link targets (vault-relative
	// paths). Carried from the scanner to the store; persisted as edges in
	// the linked table, not on the note record.
	Links []string `json:"-"`

	CreatedAt time.Time `json:"created,omitempty"`
	UpdatedAt time.Time `json:"updated,omitempty"`
}

// VaultStats summarizes the indexed vault.
type VaultStats struct {
	Notes   int `json:"notes"`
	Edges   int `json:"edges"`
	History int `json:"history"`
}
