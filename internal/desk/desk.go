// Package desk is the application state container. It owns every command
// that changes the catalog, derives role-scoped views and statistics, and
// runs imports and exports.
package desk

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/erazemk/assetdesk/internal/history"
	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/seed"
	"github.com/erazemk/assetdesk/internal/store"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrInvalid is returned for input that fails validation.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict is returned for a transition the current state forbids.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when the acting user may not see or do something.
	ErrForbidden = errors.New("forbidden")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
}

// Desk serialises mutations behind a mutex and runs each one in a single
// transaction. Reads go straight to the database.
type Desk struct {
	db *sql.DB
	mu sync.Mutex

	// Now is the clock. Tests pin it.
	Now func() time.Time
	// NewID returns a fresh identifier with the given prefix.
	NewID func(prefix string) string
}

// New returns a desk over an open, migrated database.
func New(database *sql.DB) *Desk {
	return &Desk{db: database, Now: time.Now, NewID: NewID}
}

// NewID returns prefix-<ksuid>. KSUIDs sort by creation time.
func NewID(prefix string) string {
	return prefix + "-" + ksuid.New().String()
}

// DB returns the underlying database.
func (d *Desk) DB() *sql.DB {
	return d.db
}

// write runs fn as the desk's only writer.
func (d *Desk) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return store.InTx(ctx, d.db, fn)
}

func (d *Desk) today() string {
	return d.Now().UTC().Format(model.DateLayout)
}

func (d *Desk) recorder() history.Recorder {
	return history.Recorder{
		NewID: func() string { return d.NewID("hist") },
		Now:   d.Now,
	}
}

// Seed loads the demo data set into an empty database. It reports whether
// anything was loaded.
func (d *Desk) Seed(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	seeded, err := seed.Seeded(ctx, d.db)
	if err != nil {
		return false, err
	}
	if seeded {
		return false, nil
	}
	if err := seed.Load(ctx, d.db, seed.Generate(), d.recorder()); err != nil {
		return false, fmt.Errorf("loading seed data: %w", err)
	}
	return true, nil
}

// actorName is the name stamped into createdBy and modifiedBy.
func actorName(actor *model.User) string {
	if actor == nil || actor.FullName == "" {
		return "Admin"
	}
	return actor.FullName
}

func isAdmin(actor *model.User) bool {
	return actor != nil && actor.Role == model.RoleAdmin
}
