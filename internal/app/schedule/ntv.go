package schedule

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

const (
	ntvName    = "日本テレビ"
	ntvAPIBase = "https://www.ntv.co.jp"
)

// NTV publishes its whole rolling window in one JSON document, so the
// adapter issues a single fetch per schedule build.
type NTV struct {
	client  *fetch.Client
	baseURL string
	now     func() time.Time
}

func NewNTV(client *fetch.Client) *NTV {
	return &NTV{
		client:  client,
		baseURL: ntvAPIBase,
		now:     time.Now,
	}
}

func (c *NTV) Name() string {
	return ntvName
}

type ntvActualDatetime struct {
	BroadcastDate string `json:"broadcast_date"`
	StartTime     string `json:"start_time"`
}

type ntvProgram struct {
	ActualDatetime ntvActualDatetime `json:"actual_datetime"`
	Title          string            `json:"program_title_excluding_hanrei"`
	Content        string            `json:"program_content"`
	Detail         string            `json:"program_detail"`
	SiteURL        string            `json:"program_site_url"`
}

func (c *NTV) FetchSchedule(ctx context.Context) (*Schedule, error) {
	// The cache-buster query parameter mirrors what the station's own
	// player sends.
	u := fmt.Sprintf("%s/program/json/program_list.json?_=%d", c.baseURL, c.now().UnixMilli())

	// The endpoint replies without a charset declaration. The body is JSON,
	// whose interchange encoding is UTF-8 (RFC 8259), and the station serves
	// it as such; non-UTF-8 bytes would decode to U+FFFD rather than fail.
	var raw []ntvProgram
	if err := fetchJSON(ctx, c.client, ntvName, u, &raw); err != nil {
		return nil, err
	}

	programs := make([]Program, 0, len(raw))
	for _, r := range raw {
		p, err := r.toProgram()
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}

	return &Schedule{
		ChannelName: ntvName,
		ChannelURL:  mustParseURL("https://www.ntv.co.jp/program/"),
		Programs:    programs,
	}, nil
}

func (r ntvProgram) toProgram() (Program, error) {
	start, err := time.ParseInLocation("20060102 1504", r.ActualDatetime.BroadcastDate+" "+r.ActualDatetime.StartTime, JST)
	if err != nil {
		return Program{}, &ParseError{
			Source: ntvName,
			Msg:    fmt.Sprintf("bad broadcast time %q %q", r.ActualDatetime.BroadcastDate, r.ActualDatetime.StartTime),
		}
	}

	description := r.Content
	if r.Detail != "" {
		description += "\n" + r.Detail
	}

	var link *url.URL
	if r.SiteURL != "" {
		link, _ = url.Parse(r.SiteURL)
	}

	return Program{
		Title:       r.Title,
		URL:         link,
		Description: description,
		Start:       start,
	}, nil
}
