// Package addressbook holds the per-session list of friends and their
// geocoding state. All state transitions go through explicit commands
// (Add, Remove, Resolve, Fail) so the rendering layer only ever reads
// snapshots.
package addressbook

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vportier/barycentre/internal/midpoint"
	"github.com/vportier/barycentre/internal/models"
)

// Validation errors returned by Add.
var (
	ErrEmptyName    = errors.New("name must not be empty")
	ErrEmptyAddress = errors.New("address must not be empty")
)

// Book is an ordered list of entries for one user session. Insertion order
// is preserved; it affects only display, never the midpoint.
//
// Book is not safe for concurrent use. A session's requests are sequential
// by construction and the session store hands each session its own Book.
type Book struct {
	entries []models.Entry
}

// New returns an empty address book.
func New() *Book {
	return &Book{}
}

// Add appends a new Pending entry and returns its ID. Name and address are
// trimmed of surrounding whitespace; either being empty (or all whitespace)
// is a validation error and leaves the book unchanged.
func (b *Book) Add(name, address string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if name == "" {
		return uuid.Nil, ErrEmptyName
	}
	if address == "" {
		return uuid.Nil, ErrEmptyAddress
	}

	entry := models.Entry{
		ID:      uuid.New(),
		Name:    name,
		Address: address,
		Status:  models.StatusPending,
	}
	b.entries = append(b.entries, entry)

	return entry.ID, nil
}

// Remove deletes the entry with the given ID. Removing an unknown ID is a
// no-op.
func (b *Book) Remove(id uuid.UUID) {
	for i, entry := range b.entries {
		if entry.ID == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return
		}
	}
}

// Resolve records the coordinates for a Pending entry and marks it Resolved.
// It reports whether the transition applied; results arriving for a removed
// or already-settled entry are discarded.
func (b *Book) Resolve(id uuid.UUID, coords models.Coordinates) bool {
	for i := range b.entries {
		if b.entries[i].ID == id && b.entries[i].Status == models.StatusPending {
			b.entries[i].Status = models.StatusResolved
			b.entries[i].Coordinate = &coords
			return true
		}
	}

	return false
}

// Fail marks a Pending entry as Failed with the given reason. It reports
// whether the transition applied. A failed entry stays in the book so the
// user can see and remove it; it never contributes to the midpoint.
func (b *Book) Fail(id uuid.UUID, reason string) bool {
	for i := range b.entries {
		if b.entries[i].ID == id && b.entries[i].Status == models.StatusPending {
			b.entries[i].Status = models.StatusFailed
			b.entries[i].FailReason = reason
			return true
		}
	}

	return false
}

// Entry returns the entry with the given ID.
func (b *Book) Entry(id uuid.UUID) (models.Entry, bool) {
	for _, entry := range b.entries {
		if entry.ID == id {
			return entry, true
		}
	}

	return models.Entry{}, false
}

// List returns a snapshot of all entries in insertion order.
func (b *Book) List() []models.Entry {
	out := make([]models.Entry, len(b.entries))
	copy(out, b.entries)

	return out
}

// Pending returns the entries still awaiting their geocoding lookup, in
// insertion order. Entries loaded from a share link start out here.
func (b *Book) Pending() []models.Entry {
	var out []models.Entry
	for _, entry := range b.entries {
		if entry.Status == models.StatusPending {
			out = append(out, entry)
		}
	}

	return out
}

// Len returns the number of entries in the book.
func (b *Book) Len() int {
	return len(b.entries)
}

// Midpoint returns the barycentre of all Resolved entries. ok is false while
// fewer than two entries have resolved.
func (b *Book) Midpoint() (models.Coordinates, bool) {
	var coords []models.Coordinates
	for _, entry := range b.entries {
		if entry.Status == models.StatusResolved && entry.Coordinate != nil {
			coords = append(coords, *entry.Coordinate)
		}
	}

	return midpoint.Calculate(coords)
}
