// Package server publishes the most recent checklist on localhost so that a
// calendar client can subscribe to it.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
	"github.com/tartampluch/go-screening/internal/notify"
)

// representation is one rendered view of the checklist with its cache validators.
type representation struct {
	data        []byte
	contentType string
	etag        string
}

// snapshot holds every representation of one checklist, built together so that
// both routes always describe the same generation.
type snapshot struct {
	calendar     representation
	digest       representation
	lastModified time.Time
}

// FeedServer serves the latest checklist as an iCalendar feed ("/") and as the
// plain-text digest ("/digest.txt").
type FeedServer struct {
	// Written once per generation, read on every request.
	current atomic.Pointer[snapshot]
	Port    string
}

// NewFeedServer creates a server bound to 127.0.0.1:port once started.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// Handler returns the routing table. It is exported for embedding and tests.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.serve(func(snap *snapshot) representation { return snap.calendar }))
	mux.HandleFunc(config.RouteDigest, s.serve(func(snap *snapshot) representation { return snap.digest }))
	return mux
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish renders recs and swaps them in as the served checklist.
// On a rendering error the previous checklist stays in place.
func (s *FeedServer) Publish(recs []engine.Recommendation, now time.Time) error {
	ics, err := engine.RenderCalendar(recs, now)
	if err != nil {
		return err
	}
	_, body := notify.Digest(recs)

	snap := &snapshot{
		calendar:     newRepresentation(ics, config.MimeTextCalendar),
		digest:       newRepresentation([]byte(body), config.MimeTextPlain),
		lastModified: now.UTC().Truncate(time.Second),
	}
	s.current.Store(snap)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyCount, len(recs),
		config.LogKeySizeBytes, len(ics),
		config.LogKeyETag, snap.calendar.etag,
	)
	return nil
}

func newRepresentation(data []byte, contentType string) representation {
	hash := sha256.Sum256(data)
	return representation{
		data:        data,
		contentType: contentType,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
	}
}

// serve builds a handler for one representation with conditional GET support.
func (s *FeedServer) serve(pick func(*snapshot) representation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path != config.RouteRoot && r.URL.Path != config.RouteDigest {
			http.NotFound(w, r)
			return
		}

		snap := s.current.Load()
		if snap == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}
		rep := pick(snap)

		h := w.Header()
		h.Set(config.HeaderContentType, rep.contentType)
		h.Set(config.HeaderXContentType, config.MimeNoSniff)
		h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
		h.Set(config.HeaderETag, rep.etag)
		h.Set(config.HeaderLastModified, snap.lastModified.Format(http.TimeFormat))

		// If-Modified-Since is ignored when If-None-Match is present (RFC 9110 13.1.3).
		if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
			if match == rep.etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		} else if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
			if clientTime, err := http.ParseTime(since); err == nil && !snap.lastModified.After(clientTime) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}

		if r.Method == http.MethodHead {
			return
		}
		if _, err := w.Write(rep.data); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
