// Package storage persists ledger records.
//
// A Store only knows plain records. Turning them into entities is done by
// the models package, so every backend round-trips the same data.
package storage

import (
	"errors"
	"fmt"

	"github.com/pocketledger/backend/pkg/models"
)

var (
	ErrGeneral        = errors.New("an error occurred on the server during your request")
	ErrNoBudget       = errors.New("no budget has been set")
	ErrUnknownKind    = errors.New("unknown entry kind")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Kind is the kind of entry a collection holds.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Kinds are all known kinds.
var Kinds = []Kind{KindExpense, KindIncome}

func (k Kind) validate() error {
	switch k {
	case KindExpense, KindIncome:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Store loads and saves collections of records and the budget record.
type Store interface {
	// Save overwrites all records of the kind.
	Save(kind Kind, records []models.Record) error

	// Load returns all records of the kind in saved order. If nothing has been
	// saved yet, the result is empty.
	Load(kind Kind) ([]models.Record, error)

	SaveBudget(record models.Record) error

	// LoadBudget returns ErrNoBudget if no budget is stored.
	LoadBudget() (models.Record, error)

	// DeleteBudget removes the stored budget. Deleting a missing budget is
	// not an error.
	DeleteBudget() error

	Ping() error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Open returns the Store for the backend. dir is used by the file backend,
// dsn by the sqlite backend.
func Open(backend Backend, dir, dsn string) (Store, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLStore(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, string(backend))
	}
}
