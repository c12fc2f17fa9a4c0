package schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFujiTVStart(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-20T06:00:00W4", time.Date(2025, 3, 20, 6, 0, 0, 0, JST)},
		{"2025-03-20T23:59:30W4", time.Date(2025, 3, 20, 23, 59, 30, 0, JST)},
		// Hour 24 and beyond name the small hours of the next day.
		{"2025-03-20T24:34:56W4", time.Date(2025, 3, 21, 0, 34, 56, 0, JST)},
		{"2025-03-20T27:15:00W4", time.Date(2025, 3, 21, 3, 15, 0, 0, JST)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFujiTVStart(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFujiTVStart_Malformed(t *testing.T) {
	for _, bad := range []string{"", "2025-03-20", "2025-03-20T24:34", "not a timestamp here", "2025-03-20Txx:34:56W4"} {
		_, err := parseFujiTVStart(bad)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, bad)
	}
}

func TestFujiTV_FetchSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bangumi/json/timetable_20250320.js" {
			fmt.Fprint(w, `{"contents": {"item": [{
				"title": "めざまし",
				"url": "https://www.fujitv.co.jp/meza/",
				"overview": "朝の情報番組",
				"start": "2025-03-20T05:25:00W4"
			}]}}`)
			return
		}
		fmt.Fprint(w, `{"contents": {"item": []}}`)
	}))
	defer server.Close()

	c := NewFujiTV(fastClient())
	c.baseURL = server.URL
	c.now = func() time.Time { return time.Date(2025, 3, 20, 12, 0, 0, 0, JST) }

	s, err := c.FetchSchedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "フジテレビ", s.ChannelName)
	require.Len(t, s.Programs, 1)
	assert.Equal(t, "めざまし", s.Programs[0].Title)
	assert.Equal(t, "https://www.fujitv.co.jp/meza/", s.Programs[0].URL.String())
	assert.Equal(t, "朝の情報番組", s.Programs[0].Description)
	assert.Equal(t, time.Date(2025, 3, 20, 5, 25, 0, 0, JST), s.Programs[0].Start)
}
