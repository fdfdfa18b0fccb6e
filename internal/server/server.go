package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
)

// cacheItem is one generation of the feed with its validators.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified time.Time // whole seconds, UTC
}

// CalendarServer serves the generated ICS feed and the date lookups over
// localhost HTTP.
type CalendarServer struct {
	// cache is read on every request and written once per feed generation,
	// so readers never take a lock.
	cache  atomic.Pointer[cacheItem]
	offset atomic.Value // engine.OffsetMode
	Port   string
	Clock  engine.Clock
}

// TodayResponse is the body of GET /today.
type TodayResponse struct {
	bangla.Date
	Lines     [3]string `json:"lines"`
	Gregorian string    `json:"gregorian"`
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(port string, clock engine.Clock) *CalendarServer {
	s := &CalendarServer{
		Port:  port,
		Clock: clock,
	}
	s.offset.Store(engine.OffsetLegacy)
	return s
}

// SetOffsetMode changes the offset used by /today and /month.
func (s *CalendarServer) SetOffsetMode(m engine.OffsetMode) {
	s.offset.Store(m)
}

// OffsetMode returns the offset used by /today and /month.
func (s *CalendarServer) OffsetMode() engine.OffsetMode {
	return s.offset.Load().(engine.OffsetMode)
}

// Handler routes the three endpoints.
func (s *CalendarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteToday, s.handleToday)
	mux.HandleFunc(config.RouteMonth, s.handleMonth)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(config.LocalhostBindAddr, s.Port),
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

// Update atomically replaces the served feed. The ETag is the SHA-256 of the
// content and Last-Modified comes from the server clock.
func (s *CalendarServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: s.Clock.Now().UTC().Truncate(time.Second),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// allowRead rejects everything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified.Format(http.TimeFormat))

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified applies If-None-Match, then If-Modified-Since when no entity
// tag was sent.
func notModified(r *http.Request, item *cacheItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}
	since, err := http.ParseTime(r.Header.Get(config.HeaderIfModifiedSince))
	if err != nil {
		return false
	}
	return !item.lastModified.After(since)
}

// handleToday reports the current Bangla date and its three display lines.
func (s *CalendarServer) handleToday(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	mode := s.OffsetMode()
	today := engine.Today(s.Clock, mode)
	writeJSON(w, r, TodayResponse{
		Date:      today,
		Lines:     today.Lines(),
		Gregorian: engine.TodayGregorian(s.Clock, mode).String(),
	})
}

// handleMonth lays out a Bangla month. Missing parameters select the month
// of today.
func (s *CalendarServer) handleMonth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	today := engine.Today(s.Clock, s.OffsetMode())
	cursor := bangla.CursorFor(today)

	q := r.URL.Query()
	if v := q.Get(config.QueryYear); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < config.MinQueryYear || year > config.MaxQueryYear {
			http.Error(w, config.HTTPMsgBadYear, http.StatusBadRequest)
			return
		}
		cursor.Year = year
	}
	if v := q.Get(config.QueryMonth); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < bangla.Boishakh || month > bangla.Choitro {
			http.Error(w, config.HTTPMsgBadMonth, http.StatusBadRequest)
			return
		}
		cursor.Month = month
	}

	writeJSON(w, r, bangla.BuildMonth(cursor, today))
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error(config.ErrJSONEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)

	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
