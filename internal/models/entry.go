package models

import "github.com/google/uuid"

// EntryStatus tracks how far an address book entry got through geocoding.
type EntryStatus string

const (
	// StatusPending marks an entry whose address has not been looked up yet.
	StatusPending EntryStatus = "pending"
	// StatusResolved marks an entry with known coordinates.
	StatusResolved EntryStatus = "resolved"
	// StatusFailed marks an entry whose address could not be geocoded.
	StatusFailed EntryStatus = "failed"
)

// Entry is one friend in the address book: a display name, the free-text
// address the user typed, and the outcome of the single geocoding lookup the
// entry gets. Name and address are opaque strings; they are never validated
// beyond being non-empty.
type Entry struct {
	ID         uuid.UUID    // ID is the unique identifier for the entry.
	Name       string       // Name is the friend's display name.
	Address    string       // Address is the location to be geocoded.
	Status     EntryStatus  // Status is the entry's resolution state.
	Coordinate *Coordinates // Coordinate is set only when Status is StatusResolved.
	FailReason string       // FailReason is set only when Status is StatusFailed.
}
