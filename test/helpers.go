// Package test contains helpers shared by the tests of other packages.
package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/storage"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// Today is the fixed date used by Ledger.
func Today() types.Date {
	return types.NewDate(2025, 2, 8)
}

// Ledger returns an empty ledger backed by a SQLite database in a
// temporary directory. Entries added without a date get Today.
//
// The store is returned so that tests can close it to provoke errors.
func Ledger(t *testing.T) (*ledger.Ledger, storage.Store) {
	store, err := storage.NewSQLStore(TmpFile(t))
	require.NoError(t, err, "Store initialization failed")
	t.Cleanup(func() { store.Close() })

	l := ledger.New(store, ledger.WithClock(Today))
	require.NoError(t, l.Load())

	return l, store
}
