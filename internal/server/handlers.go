package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/vportier/barycentre/internal/addressbook"
	"github.com/vportier/barycentre/internal/models"
	"github.com/vportier/barycentre/internal/sharelink"
)

// coordDTO mirrors models.Coordinates on the wire.
type coordDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// entryDTO is one address book entry as the page's script consumes it.
type entryDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Status     string    `json:"status"`
	Coordinate *coordDTO `json:"coordinate,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// listDTO is the full session view: all entries plus the midpoint, which is
// null while fewer than two entries have resolved.
type listDTO struct {
	Entries  []entryDTO `json:"entries"`
	Midpoint *coordDTO  `json:"midpoint"`
}

type addRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func entryToDTO(entry models.Entry) entryDTO {
	dto := entryDTO{
		ID:      entry.ID.String(),
		Name:    entry.Name,
		Address: entry.Address,
		Status:  string(entry.Status),
		Error:   entry.FailReason,
	}
	if entry.Coordinate != nil {
		dto.Coordinate = &coordDTO{Lat: entry.Coordinate.Latitude, Lon: entry.Coordinate.Longitude}
	}

	return dto
}

func (s *Server) listDTOFor(book *addressbook.Book) listDTO {
	entries := book.List()
	out := listDTO{Entries: make([]entryDTO, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, entryToDTO(entry))
	}
	if mid, ok := book.Midpoint(); ok {
		out.Midpoint = &coordDTO{Lat: mid.Latitude, Lon: mid.Longitude}
	}

	return out
}

// handleListEntries resolves any entries still pending (share-link imports
// land here unresolved) and returns the session view.
func (s *Server) handleListEntries(writer http.ResponseWriter, req *http.Request) {
	book := s.store.Get(s.sessionToken(writer, req))

	s.resolver.ResolvePending(req.Context(), book)

	s.writeJSON(writer, req, http.StatusOK, s.listDTOFor(book))
}

// handleAddEntry appends one entry and geocodes it before answering, so the
// caller gets the settled entry back. Validation failures leave the book
// untouched.
func (s *Server) handleAddEntry(writer http.ResponseWriter, req *http.Request) {
	var body addRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		s.writeError(writer, req, http.StatusBadRequest, "request body must be JSON with name and address")
		return
	}

	book := s.store.Get(s.sessionToken(writer, req))

	id, err := book.Add(body.Name, body.Address)
	if err != nil {
		if errors.Is(err, addressbook.ErrEmptyName) || errors.Is(err, addressbook.ErrEmptyAddress) {
			s.writeError(writer, req, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.log.ErrorContext(req.Context(), "Failed to add entry", "error", err)
		s.writeError(writer, req, http.StatusInternalServerError, "internal server error")
		return
	}

	entry, _ := book.Entry(id)
	s.resolver.ResolveEntry(req.Context(), book, entry)

	entry, _ = book.Entry(id)
	s.writeJSON(writer, req, http.StatusCreated, entryToDTO(entry))
}

// handleRemoveEntry deletes an entry. Unknown or malformed IDs still answer
// 204: removal of something absent is a no-op, not an error.
func (s *Server) handleRemoveEntry(writer http.ResponseWriter, req *http.Request) {
	book := s.store.Get(s.sessionToken(writer, req))

	if id, err := uuid.Parse(req.PathValue("id")); err == nil {
		book.Remove(id)
	}

	writer.WriteHeader(http.StatusNoContent)
}

// handleReset destroys the session's address book.
func (s *Server) handleReset(writer http.ResponseWriter, req *http.Request) {
	s.store.Reset(s.sessionToken(writer, req))
	writer.WriteHeader(http.StatusNoContent)
}

// handleShare returns the absolute share URL reproducing the current list.
// Only (name, address) pairs are embedded; a recipient's session re-geocodes
// every address.
func (s *Server) handleShare(writer http.ResponseWriter, req *http.Request) {
	book := s.store.Get(s.sessionToken(writer, req))

	friends := make([]sharelink.Friend, 0, book.Len())
	for _, entry := range book.List() {
		friends = append(friends, sharelink.Friend{Name: entry.Name, Address: entry.Address})
	}

	s.writeJSON(writer, req, http.StatusOK, map[string]string{
		"url": sharelink.URL(s.cfg.BaseURL, friends),
	})
}

func (s *Server) writeJSON(writer http.ResponseWriter, req *http.Request, status int, v any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(v); err != nil {
		s.log.ErrorContext(req.Context(), "Failed to encode response",
			"method", req.Method, "path", req.URL.Path, "error", err)
	}
}

func (s *Server) writeError(writer http.ResponseWriter, req *http.Request, status int, msg string) {
	s.writeJSON(writer, req, status, map[string]string{"error": msg})
}
