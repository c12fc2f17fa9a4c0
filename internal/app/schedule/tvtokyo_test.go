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

func TestTVTokyo_FetchSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tbcms/assets/data/20250320.json" {
			// Keys are deliberately out of order; slot 12 has no main
			// service and slot 18 has a blank start time.
			fmt.Fprint(w, `{
				"18": {"1": {"url": "//www.tv-tokyo.co.jp/none/", "start_time": "", "title": "休止"}},
				"12": {"2": {"url": "//www.tv-tokyo.co.jp/sub/", "start_time": "12:00", "title": "サブ"}},
				"10": {"1": {"url": "//www.tv-tokyo.co.jp/yuhi/", "start_time": "10:00", "title": "昼番組", "description": "昼の情報"}},
				"03": {"1": {"url": "//www.tv-tokyo.co.jp/asa/", "start_time": "3:30", "title": "深夜番組"}}
			}`)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	c := NewTVTokyo(fastClient())
	c.baseURL = server.URL
	c.now = func() time.Time { return time.Date(2025, 3, 20, 12, 0, 0, 0, JST) }

	s, err := c.FetchSchedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "テレ東", s.ChannelName)
	require.Len(t, s.Programs, 2)

	// Slots come back in key order regardless of document order.
	assert.Equal(t, "深夜番組", s.Programs[0].Title)
	assert.Equal(t, "https://www.tv-tokyo.co.jp/asa/", s.Programs[0].URL.String())
	assert.Equal(t, time.Date(2025, 3, 21, 3, 30, 0, 0, JST), s.Programs[0].Start)

	assert.Equal(t, "昼番組", s.Programs[1].Title)
	assert.Equal(t, "昼の情報", s.Programs[1].Description)
	assert.Equal(t, time.Date(2025, 3, 20, 10, 0, 0, 0, JST), s.Programs[1].Start)
}

func TestTVTokyoSlot_BadStartTime(t *testing.T) {
	slot := tvTokyoSlot{URL: "//www.tv-tokyo.co.jp/x/", StartTime: "noon", Title: "番組"}

	_, err := slot.toProgram(time.Date(2025, 3, 20, 0, 0, 0, 0, JST))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Msg, "start time")
}
