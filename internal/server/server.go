// Package server exposes the web UI and the JSON API over net/http. It is
// the only layer that knows about cookies, query strings and status codes;
// all state changes go through addressbook commands and the resolver.
package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/vportier/barycentre/internal/config"
	"github.com/vportier/barycentre/internal/metrics"
	"github.com/vportier/barycentre/internal/service"
	"github.com/vportier/barycentre/internal/session"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

// sessionCookie carries the opaque session token. The token is the only
// thing the browser holds; the address book itself stays server-side.
const sessionCookie = "barycentre_session"

// Server wires HTTP handlers with their dependencies. This is the API
// composition root; handlers stay unaware of concrete providers.
type Server struct {
	log      *slog.Logger
	store    *session.Store
	resolver *service.ResolverService
	metrics  *metrics.Metrics
	cfg      *config.Config
	tmpl     *template.Template
}

// New creates a Server with its page template parsed.
func New(
	log *slog.Logger,
	store *session.Store,
	resolver *service.ResolverService,
	appMetrics *metrics.Metrics,
	cfg *config.Config,
) *Server {
	return &Server{
		log:      log,
		store:    store,
		resolver: resolver,
		metrics:  appMetrics,
		cfg:      cfg,
		tmpl:     template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl")),
	}
}

// Handler returns the routed application handler wrapped in the logging and
// metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/entries", s.handleListEntries)
	mux.HandleFunc("POST /api/entries", s.handleAddEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", s.handleRemoveEntry)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/share", s.handleShare)

	return s.observe(mux)
}

// sessionToken returns the request's session token, minting one (and setting
// the cookie) on first contact.
func (s *Server) sessionToken(writer http.ResponseWriter, req *http.Request) string {
	if cookie, err := req.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := session.NewToken()
	http.SetCookie(writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return token
}
