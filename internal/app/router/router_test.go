package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmingn/dtv-schedule-rss/internal/app/schedule"
)

type stubChannel struct {
	name string
	err  error
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) FetchSchedule(ctx context.Context) (*schedule.Schedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, _ := url.Parse("https://example.com/tv/")
	return &schedule.Schedule{
		ChannelName: s.name,
		ChannelURL:  u,
		Programs: []schedule.Program{{
			Title:       "テスト番組",
			Description: "テスト用の説明",
			Start:       time.Date(2025, 3, 20, 7, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
		}},
	}, nil
}

func testEngine() *gin.Engine {
	return NewEngine([]schedule.Entry{
		{Path: "test-dtv", Channel: &stubChannel{name: "テストテレビ"}},
		{Path: "broken-dtv", Channel: &stubChannel{name: "壊れたテレビ", err: errors.New("upstream down")}},
	})
}

func TestGetIndex(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `<a href="/test-dtv">/test-dtv</a>`)
	assert.Contains(t, w.Body.String(), "テストテレビ")
}

func TestGetScheduleRSS(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test-dtv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))

	feed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "テストテレビ", feed.Title)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "テスト番組", feed.Items[0].Title)
}

func TestGetScheduleRSS_UnknownPath(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/no-such-dtv", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetScheduleRSS_FetchFailure(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/broken-dtv", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
