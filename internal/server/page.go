package server

import (
	"net/http"
	"strings"

	"github.com/vportier/barycentre/internal/addressbook"
	"github.com/vportier/barycentre/internal/sharelink"
)

// pageData feeds the index template: map base-layer settings plus a warning
// flag for malformed share links.
type pageData struct {
	TileURL     string
	Attribution string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	LinkWarning bool
}

// handleIndex renders the single page. When the URL carries a share-link
// query value and the session's book is still empty, the book is
// pre-populated with Pending entries; they are geocoded on the page's first
// entry listing, never from stored coordinates. A malformed value never
// breaks the page: the book stays empty and the template shows a warning.
func (s *Server) handleIndex(writer http.ResponseWriter, req *http.Request) {
	data := pageData{
		TileURL:     s.cfg.Map.TileURL,
		Attribution: s.cfg.Map.Attribution,
		CenterLat:   s.cfg.Map.CenterLat,
		CenterLon:   s.cfg.Map.CenterLon,
		Zoom:        s.cfg.Map.Zoom,
	}

	if value := req.URL.Query().Get(sharelink.QueryParam); value != "" {
		book := s.store.Get(s.sessionToken(writer, req))
		if book.Len() == 0 {
			friends, err := sharelink.Parse(value)
			if err != nil {
				s.log.WarnContext(req.Context(), "Ignoring malformed share link", "error", err)
				data.LinkWarning = true
			}
			s.importFriends(req, book, friends)
		}
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(writer, data); err != nil {
		s.log.ErrorContext(req.Context(), "Failed to render page", "error", err)
	}
}

// importFriends pre-fills the book from parsed share-link pairs. A blank
// name defaults to "Friend" (links can carry address-only items); items the
// book still rejects are skipped so one bad pair cannot sink the rest.
func (s *Server) importFriends(req *http.Request, book *addressbook.Book, friends []sharelink.Friend) {
	for _, friend := range friends {
		name := friend.Name
		if strings.TrimSpace(name) == "" {
			name = "Friend"
		}

		if _, err := book.Add(name, friend.Address); err != nil {
			s.log.WarnContext(req.Context(), "Skipping share link item",
				"name", friend.Name, "error", err)
		}
	}
}
