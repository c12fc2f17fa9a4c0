package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_RSSDescription(t *testing.T) {
	p := Program{
		Title:       "Test Program",
		Description: "This is a test description.",
		Start:       time.Date(2025, 3, 20, 15, 30, 0, 0, JST),
	}
	assert.Equal(t, "03/20 15:30\n\nThis is a test description.", p.rssDescription())
}

func TestProgram_RSSDescriptionWithoutBody(t *testing.T) {
	p := Program{
		Title: "Test Program",
		Start: time.Date(2025, 3, 20, 15, 30, 0, 0, JST),
	}
	assert.Equal(t, "03/20 15:30", p.rssDescription())
}

func TestProgram_RSSPubDateIsAWeekBeforeStart(t *testing.T) {
	p := Program{Start: time.Date(2025, 3, 20, 15, 30, 0, 0, JST)}
	assert.Equal(t, time.Date(2025, 3, 13, 15, 30, 0, 0, JST), p.rssPubDate())
}

func TestSchedule_ToRSS(t *testing.T) {
	s := &Schedule{
		ChannelName: "テストテレビ",
		ChannelURL:  mustParseURL("https://example.com/tv/"),
		Programs: []Program{
			{
				Title:       "First",
				URL:         mustParseURL("https://example.com/tv/first"),
				Description: "Opening program.",
				Start:       time.Date(2025, 3, 20, 6, 0, 0, 0, JST),
			},
			{
				Title: "Second",
				Start: time.Date(2025, 3, 20, 7, 0, 0, 0, JST),
			},
		},
	}

	ch := s.ToRSS()
	assert.Equal(t, "テストテレビ", ch.Title)
	assert.Equal(t, "https://example.com/tv/", ch.Link)
	require.Len(t, ch.Items, 2)

	assert.Equal(t, "First", ch.Items[0].Title)
	assert.Equal(t, "https://example.com/tv/first", ch.Items[0].Link)
	assert.Equal(t, "03/20 06:00\n\nOpening program.", ch.Items[0].Description)
	assert.Equal(t, "Thu, 13 Mar 2025 06:00:00 +0900", ch.Items[0].PubDate)

	assert.Equal(t, "Second", ch.Items[1].Title)
	assert.Empty(t, ch.Items[1].Link)
	assert.Equal(t, "03/20 07:00", ch.Items[1].Description)
}

func TestToTxtFormat(t *testing.T) {
	s := &Schedule{
		ChannelName: "テストテレビ",
		ChannelURL:  mustParseURL("https://example.com/tv/"),
		Programs: []Program{
			{
				Title: "First",
				URL:   mustParseURL("https://example.com/tv/first"),
				Start: time.Date(2025, 3, 20, 6, 0, 0, 0, JST),
			},
			{
				Title: "Second",
				Start: time.Date(2025, 3, 20, 7, 0, 0, 0, JST),
			},
		},
	}

	out, err := ToTxtFormat(s)
	require.NoError(t, err)
	assert.Equal(t, "03/20 06:00\tFirst\thttps://example.com/tv/first\n03/20 07:00\tSecond\t\n", out)
}

func TestToTxtFormat_EmptySchedule(t *testing.T) {
	s := &Schedule{ChannelName: "テストテレビ"}

	_, err := ToTxtFormat(s)
	assert.EqualError(t, err, "no programs found")
}
