package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
)

// lateEvening is 5 Poush 1432 with the legacy offset and 6 Poush 1432 in
// Bangladesh time.
var lateEvening = time.Date(2025, 12, 20, 20, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return lateEvening }

func newTestServer() *CalendarServer {
	return NewCalendarServer("0", fixedClock{})
}

func serve(t *testing.T, srv *CalendarServer, method, target string, headers ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	resp := w.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

const sampleFeed = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"

func TestHandler_Feed(t *testing.T) {
	srv := newTestServer()
	srv.Update([]byte(sampleFeed))

	resp := serve(t, srv, http.MethodGet, config.RouteCalendar)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	h := resp.Header
	assert.Equal(t, config.MimeTextCalendar, h.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, h.Get(config.HeaderXContentType))
	assert.Equal(t, config.CacheControlPrivate, h.Get(config.HeaderCacheControl))
	assert.Equal(t, "Sat, 20 Dec 2025 20:00:00 GMT", h.Get(config.HeaderLastModified))
	assert.Regexp(t, `^"[0-9a-f]{64}"$`, h.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, sampleFeed, string(body))

	head := serve(t, srv, http.MethodHead, config.RouteCalendar)
	assert.Equal(t, http.StatusOK, head.StatusCode)
	body, _ = io.ReadAll(head.Body)
	assert.Empty(t, body)
}

func TestHandler_Feed_ConditionalRequests(t *testing.T) {
	srv := newTestServer()
	srv.Update([]byte(sampleFeed))
	etag := serve(t, srv, http.MethodGet, config.RouteCalendar).Header.Get(config.HeaderETag)

	tests := []struct {
		name    string
		headers []string
		want    int
	}{
		{"Matching ETag", []string{config.HeaderIfNoneMatch, etag}, http.StatusNotModified},
		{"Stale ETag", []string{config.HeaderIfNoneMatch, `"old"`}, http.StatusOK},
		{"Stale ETag wins over date", []string{
			config.HeaderIfNoneMatch, `"old"`,
			config.HeaderIfModifiedSince, "Sun, 21 Dec 2025 00:00:00 GMT",
		}, http.StatusOK},
		{"Same second", []string{config.HeaderIfModifiedSince, "Sat, 20 Dec 2025 20:00:00 GMT"}, http.StatusNotModified},
		{"Later date", []string{config.HeaderIfModifiedSince, "Sun, 21 Dec 2025 00:00:00 GMT"}, http.StatusNotModified},
		{"Earlier date", []string{config.HeaderIfModifiedSince, "Fri, 19 Dec 2025 00:00:00 GMT"}, http.StatusOK},
		{"Garbled date", []string{config.HeaderIfModifiedSince, "yesterday"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(t, srv, http.MethodGet, config.RouteCalendar, tt.headers...)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusNotModified {
				body, _ := io.ReadAll(resp.Body)
				assert.Empty(t, body)
			}
		})
	}
}

func TestHandler_Feed_Initializing(t *testing.T) {
	resp := serve(t, newTestServer(), http.MethodGet, config.RouteCalendar)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

func TestHandler_Feed_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()
	srv.Update([]byte(sampleFeed))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		resp := serve(t, srv, method, config.RouteCalendar)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
		assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
	}
}

// TestServer_ConcurrentUpdates is meant for -race: readers must only ever
// see a complete feed generation.
func TestServer_ConcurrentUpdates(t *testing.T) {
	srv := newTestServer()
	end := time.Now().Add(300 * time.Millisecond)
	var wg sync.WaitGroup

	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				srv.Update([]byte(fmt.Sprintf("GEN:%d-%d", w, i)))
			}
		}()
	}

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))
				switch w.Code {
				case http.StatusOK:
					assert.Regexp(t, `^GEN:\d+-\d+$`, w.Body.String())
				case http.StatusServiceUnavailable:
				default:
					t.Errorf("unexpected status %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"
	url := "http://" + config.LocalhostBindAddr + ":" + port + config.RouteToday

	srv := NewCalendarServer(port, fixedClock{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(config.ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHandler_Today(t *testing.T) {
	tests := []struct {
		name      string
		mode      engine.OffsetMode
		want      bangla.Date
		lines     [3]string
		gregorian string
	}{
		{
			name:      "Legacy offset",
			mode:      engine.OffsetLegacy,
			want:      bangla.Date{Day: 5, Month: 8, Year: 1432, Weekday: 6},
			lines:     [3]string{"৫ই পৌষ,", "১৪৩২ বঙ্গাব্দ", "শনিবার, শীতকাল"},
			gregorian: "2025-12-20",
		},
		{
			name:      "Bangladesh offset",
			mode:      engine.OffsetBangladesh,
			want:      bangla.Date{Day: 6, Month: 8, Year: 1432, Weekday: 0},
			lines:     [3]string{"৬ই পৌষ,", "১৪৩২ বঙ্গাব্দ", "রবিবার, শীতকাল"},
			gregorian: "2025-12-21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer()
			srv.SetOffsetMode(tt.mode)

			resp := serve(t, srv, http.MethodGet, config.RouteToday)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))

			var got TodayResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.want, got.Date)
			assert.Equal(t, tt.lines, got.Lines)
			assert.Equal(t, tt.gregorian, got.Gregorian)
		})
	}
}

func TestHandler_Today_Head(t *testing.T) {
	resp := serve(t, newTestServer(), http.MethodHead, config.RouteToday)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

func TestHandler_Month(t *testing.T) {
	resp := serve(t, newTestServer(), http.MethodGet, config.RouteMonth+"?year=1432&month=8")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m bangla.Month
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))

	assert.Equal(t, "পৌষ", m.Title)
	assert.Equal(t, "১৪৩২ বঙ্গাব্দ • শীতকাল", m.Subtitle)
	assert.Equal(t, 30, m.DaysInMonth)
	assert.Equal(t, 1, m.FirstWeekday)
	require.Len(t, m.Weeks, 5)
	assert.Equal(t, 0, m.Weeks[0][0].Day, "blank before the first weekday")
	assert.Equal(t, bangla.Cell{Day: 5, Label: "৫", Today: true}, m.Weeks[0][5])
}

// TestHandler_Month_Defaults falls back to today's month.
func TestHandler_Month_Defaults(t *testing.T) {
	resp := serve(t, newTestServer(), http.MethodGet, config.RouteMonth)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m bangla.Month
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, 8, m.Month)
	assert.Equal(t, 1432, m.Year)

	resp = serve(t, newTestServer(), http.MethodGet, config.RouteMonth+"?month=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, 0, m.Month)
	assert.Equal(t, 1432, m.Year)
	assert.Equal(t, 1, m.FirstWeekday, "Boishakh 1432 starts on Monday")
}

func TestHandler_Month_BadParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		msg   string
	}{
		{"Month too large", "?year=1432&month=12", config.HTTPMsgBadMonth},
		{"Negative month", "?year=1432&month=-1", config.HTTPMsgBadMonth},
		{"Month not a number", "?year=1432&month=poush", config.HTTPMsgBadMonth},
		{"Year not a number", "?year=abc&month=3", config.HTTPMsgBadYear},
		{"Year zero", "?year=0&month=3", config.HTTPMsgBadYear},
		{"Year too large", "?year=100000&month=3", config.HTTPMsgBadYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(t, newTestServer(), http.MethodGet, config.RouteMonth+tt.query)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.msg)
		})
	}
}

func TestHandler_DateEndpoints_MethodNotAllowed(t *testing.T) {
	for _, route := range []string{config.RouteToday, config.RouteMonth} {
		resp := serve(t, newTestServer(), http.MethodDelete, route)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, route)
		assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
	}
}

func TestServer_OffsetModeDefault(t *testing.T) {
	assert.Equal(t, engine.OffsetLegacy, newTestServer().OffsetMode())
}

func TestServer_StartWithoutPort(t *testing.T) {
	srv := NewCalendarServer("", fixedClock{})
	err := srv.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}
