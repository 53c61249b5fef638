package api

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"job-calendar-feed/internal/cache"
	"job-calendar-feed/internal/config"
	"job-calendar-feed/internal/feed"
	"job-calendar-feed/internal/ical"
	"job-calendar-feed/internal/models"
	"job-calendar-feed/internal/telemetry"
	"job-calendar-feed/internal/upstream"
)

// Server wires the HTTP handlers for the calendar feed.
type Server struct {
	cfg       config.Config
	client    *upstream.Client
	enricher  *feed.Enricher
	respCache cache.ResponseCache
	log       *zap.SugaredLogger
}

// New constructs the feed server.
func New(cfg config.Config, client *upstream.Client, enricher *feed.Enricher, respCache cache.ResponseCache, log *zap.SugaredLogger) *Server {
	return &Server{
		cfg:       cfg,
		client:    client,
		enricher:  enricher,
		respCache: respCache,
		log:       log,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/metrics", telemetry.Handler())

	r.Get("/calendar.ics", s.handleFeed)
	r.Get("/calendar-test.ics", s.handleDiagnostic)
	return r
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	telemetry.FeedRequests.Inc()

	if s.cfg.AccessKey != "" && r.URL.Query().Get("key") != s.cfg.AccessKey {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	ctx := r.Context()
	cacheKey := r.URL.RequestURI()

	if entry, ok, err := s.respCache.Get(ctx, cacheKey); err != nil {
		s.log.Warnw("response cache read failed", "err", err)
	} else if ok {
		if r.Header.Get("If-None-Match") == entry.ETag {
			telemetry.FeedNotModified.Inc()
			w.Header().Set("ETag", entry.ETag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		telemetry.FeedCacheHits.Inc()
		writeCalendar(w, entry.Body, entry.ETag)
		return
	}

	params := parseFeedQuery(r, s.cfg)

	filter := upstream.JobFilter{
		Limit:    params.limit,
		Statuses: params.statuses,
	}
	if params.windowStart != nil {
		createdFrom := params.windowStart.AddDate(0, 0, -s.cfg.CreatedWindowBuffer)
		filter.CreatedOnOrAfter = &createdFrom
	}

	jobs, err := s.client.ListJobs(ctx, filter)
	if err != nil {
		telemetry.UpstreamErrors.Inc()
		s.log.Errorw("job listing failed", "err", err)
		http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var opsByJob map[string][]models.Operation
	if params.enrich {
		opsByJob = s.enricher.Enrich(ctx, jobs)
	}

	events := feed.BuildEvents(jobs, opsByJob, feed.MapOptions{
		AllDay:      params.allDay,
		WindowStart: params.windowStart,
		WindowEnd:   params.windowEnd,
	})
	telemetry.LastRenderEventsGauge.Set(float64(len(events)))

	body := ical.Render(events, ical.Options{AllDay: params.allDay})
	etag := etagFor(body)

	if err := s.respCache.Put(ctx, cacheKey, cache.Entry{Body: body, ETag: etag}); err != nil {
		s.log.Warnw("response cache write failed", "err", err)
	}

	writeCalendar(w, body, etag)
}

// handleDiagnostic serves a fixed one-event calendar without touching
// the upstream, so a client subscription can be verified end to end.
func (s *Server) handleDiagnostic(w http.ResponseWriter, _ *http.Request) {
	start := time.Now().UTC().Truncate(time.Hour)
	events := []models.CalendarEvent{{
		ID:          "diagnostic",
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Summary:     "Calendar feed test event",
		Description: "If you can see this event, the feed renders correctly.",
	}}
	body := ical.Render(events, ical.Options{CalName: "Feed Test"})
	writeCalendar(w, body, etagFor(body))
}

func writeCalendar(w http.ResponseWriter, body, etag string) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Disposition", `inline; filename="jobs.ics"`)
	w.Header().Set("ETag", etag)
	_, _ = w.Write([]byte(body))
}

func etagFor(body string) string {
	sum := sha256.Sum256([]byte(body))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
