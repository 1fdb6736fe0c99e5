// Package service drives the geocoding of address book entries: one lookup
// per entry, with the outcome applied back to the book as a Resolve or Fail
// command.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vportier/barycentre/internal/addressbook"
	"github.com/vportier/barycentre/internal/geocoding"
	"github.com/vportier/barycentre/internal/metrics"
	"github.com/vportier/barycentre/internal/models"
)

// ResolverService resolves address book entries through a geocoding
// provider, recording request duration and outcome metrics per lookup.
type ResolverService struct {
	log          *slog.Logger       // Logger for logging service activities
	provider     geocoding.Provider // Geocoding provider for external geocoding services
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking service performance
}

// NewResolverService creates a new instance of ResolverService.
func NewResolverService(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
) *ResolverService {
	return &ResolverService{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
	}
}

// ResolveEntry performs the single geocoding lookup an entry gets and
// applies the result to the book. A failed lookup marks the entry Failed
// and is never fatal; other entries and the session are unaffected. If the
// entry was removed while the lookup was in flight the result is discarded.
func (rs *ResolverService) ResolveEntry(ctx context.Context, book *addressbook.Book, entry models.Entry) {
	startTime := time.Now()
	coords, err := rs.provider.Geocode(ctx, entry.Address)
	duration := time.Since(startTime).Seconds()
	rs.metrics.RequestSeconds.WithLabelValues(rs.providerName).Observe(duration)

	if err != nil {
		rs.log.WarnContext(ctx, "Failed to geocode entry",
			"entry", entry.ID, "address", entry.Address, "error", err)
		rs.metrics.LookupsProcessed.WithLabelValues("failure").Inc()
		rs.metrics.APIErrors.Inc()

		book.Fail(entry.ID, err.Error())
		return
	}

	rs.metrics.LookupsProcessed.WithLabelValues("success").Inc()

	if !book.Resolve(entry.ID, *coords) {
		rs.log.DebugContext(ctx, "Entry gone before result applied, discarding", "entry", entry.ID)
		return
	}

	rs.log.DebugContext(ctx, "Entry resolved",
		"entry", entry.ID, "lat", coords.Latitude, "lon", coords.Longitude)
}

// ResolvePending resolves every Pending entry in the book, sequentially and
// in insertion order. Entries pre-filled from a share link go through here
// on the first listing after page load.
func (rs *ResolverService) ResolvePending(ctx context.Context, book *addressbook.Book) {
	for _, entry := range book.Pending() {
		rs.ResolveEntry(ctx, book, entry)
	}
}
