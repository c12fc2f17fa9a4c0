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

func TestNTV_FetchSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/program/json/program_list.json", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("_"))
		fmt.Fprint(w, `[
			{
				"actual_datetime": {"broadcast_date": "20250320", "start_time": "0700"},
				"program_title_excluding_hanrei": "朝の情報番組",
				"program_content": "今日のニュース",
				"program_detail": "特集あり",
				"program_site_url": "https://www.ntv.co.jp/asa/"
			},
			{
				"actual_datetime": {"broadcast_date": "20250321", "start_time": "0100"},
				"program_title_excluding_hanrei": "深夜番組",
				"program_content": ""
			}
		]`)
	}))
	defer server.Close()

	c := NewNTV(fastClient())
	c.baseURL = server.URL
	c.now = func() time.Time { return time.Date(2025, 3, 20, 12, 0, 0, 0, JST) }

	s, err := c.FetchSchedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "日本テレビ", s.ChannelName)
	assert.Equal(t, "https://www.ntv.co.jp/program/", s.ChannelURL.String())
	require.Len(t, s.Programs, 2)

	assert.Equal(t, "朝の情報番組", s.Programs[0].Title)
	assert.Equal(t, "今日のニュース\n特集あり", s.Programs[0].Description)
	assert.Equal(t, "https://www.ntv.co.jp/asa/", s.Programs[0].URL.String())
	assert.Equal(t, time.Date(2025, 3, 20, 7, 0, 0, 0, JST), s.Programs[0].Start)

	assert.Equal(t, "深夜番組", s.Programs[1].Title)
	assert.Empty(t, s.Programs[1].Description)
	assert.Nil(t, s.Programs[1].URL)
	assert.Equal(t, time.Date(2025, 3, 21, 1, 0, 0, 0, JST), s.Programs[1].Start)
}

func TestNTV_BadbroadcastTimeIsAParseError(t *testing.T) {
	r := ntvProgram{ActualDatetime: ntvActualDatetime{BroadcastDate: "20250320", StartTime: "7時"}}

	_, err := r.toProgram()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "日本テレビ", parseErr.Source)
}
