// Package store persists validation reports so that annotation QA can track
// a corpus over time.
//
// Two implementations are provided: [MongoStore] for shared deployments and
// [MemoryStore] for tests and single-process use.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/uccalint/pkg/validation"
)

// Record is one persisted validation run.
type Record struct {
	ID          string                  `bson:"_id" json:"id"`
	PassageID   string                  `bson:"passage_id" json:"passage_id"`
	Hash        string                  `bson:"hash" json:"hash"`
	Valid       bool                    `bson:"valid" json:"valid"`
	Truncated   bool                    `bson:"truncated" json:"truncated"`
	Options     validation.Options      `bson:"options" json:"options"`
	Diagnostics []validation.Diagnostic `bson:"diagnostics" json:"diagnostics"`
	CreatedAt   time.Time               `bson:"created_at" json:"created_at"`
}

// ReportStore saves and queries records.
type ReportStore interface {
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// History returns up to limit records for a passage, newest first.
	History(ctx context.Context, passageID string, limit int) ([]*Record, error)

	Close(ctx context.Context) error
}
