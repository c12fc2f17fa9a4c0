package schedule

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

const (
	fujiTVName    = "フジテレビ"
	fujiTVAPIBase = "https://www.fujitv.co.jp"
)

// FujiTV serves one JSON timetable document per calendar day.
type FujiTV struct {
	client  *fetch.Client
	baseURL string
	now     func() time.Time
}

func NewFujiTV(client *fetch.Client) *FujiTV {
	return &FujiTV{
		client:  client,
		baseURL: fujiTVAPIBase,
		now:     time.Now,
	}
}

func (c *FujiTV) Name() string {
	return fujiTVName
}

type fujiTVProgram struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Overview string `json:"overview"`
	Start    string `json:"start"`
}

func (c *FujiTV) FetchSchedule(ctx context.Context) (*Schedule, error) {
	dates := weekDates(c.now())

	programs, err := gather(ctx, len(dates), func(ctx context.Context, i int) ([]Program, error) {
		return c.fetchDate(ctx, dates[i])
	})
	if err != nil {
		return nil, err
	}

	return &Schedule{
		ChannelName: fujiTVName,
		ChannelURL:  mustParseURL("https://www.fujitv.co.jp/timetable/weekly/"),
		Programs:    programs,
	}, nil
}

func (c *FujiTV) fetchDate(ctx context.Context, date time.Time) ([]Program, error) {
	u := fmt.Sprintf("%s/bangumi/json/timetable_%s.js", c.baseURL, date.Format("20060102"))

	var payload struct {
		Contents struct {
			Item []fujiTVProgram `json:"item"`
		} `json:"contents"`
	}
	if err := fetchJSON(ctx, c.client, fujiTVName, u, &payload); err != nil {
		return nil, err
	}

	programs := make([]Program, 0, len(payload.Contents.Item))
	for _, r := range payload.Contents.Item {
		p, err := r.toProgram()
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func (r fujiTVProgram) toProgram() (Program, error) {
	start, err := parseFujiTVStart(r.Start)
	if err != nil {
		return Program{}, err
	}

	var link *url.URL
	if r.URL != "" {
		link, _ = url.Parse(r.URL)
	}

	return Program{
		Title:       r.Title,
		URL:         link,
		Description: r.Overview,
		Start:       start,
	}, nil
}

// parseFujiTVStart decodes timestamps like "2025-03-20T24:34:56W1": the date
// part names the broadcast day, and the hour field may exceed 23 for
// after-midnight slots, rolling into the next calendar day.
func parseFujiTVStart(s string) (time.Time, error) {
	if len(s) < 19 {
		return time.Time{}, &ParseError{Source: fujiTVName, Msg: fmt.Sprintf("bad start %q", s)}
	}

	date, err := time.ParseInLocation("2006-01-02", s[:10], JST)
	if err != nil {
		return time.Time{}, &ParseError{Source: fujiTVName, Msg: fmt.Sprintf("bad start %q", s)}
	}

	parts := strings.Split(s[11:19], ":")
	if len(parts) != 3 {
		return time.Time{}, &ParseError{Source: fujiTVName, Msg: fmt.Sprintf("bad start %q", s)}
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	seconds, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, &ParseError{Source: fujiTVName, Msg: fmt.Sprintf("bad start %q", s)}
	}

	return date.Add(time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second), nil
}
