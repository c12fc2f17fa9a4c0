package schedule

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

const mxtvAPIBase = "https://s.mxtv.jp"

// MXTV covers both TOKYO MX sub-channels; they share one endpoint family
// that differs only by an integer selector in the file name.
type MXTV struct {
	subChannel int
	client     *fetch.Client
	baseURL    string
	now        func() time.Time
}

func NewMXTV(client *fetch.Client, subChannel int) *MXTV {
	return &MXTV{
		subChannel: subChannel,
		client:     client,
		baseURL:    mxtvAPIBase,
		now:        time.Now,
	}
}

func (c *MXTV) Name() string {
	return fmt.Sprintf("TOKYO MX %d", c.subChannel)
}

type mxtvProgram struct {
	StartTime   string `json:"Start_time"`
	EventName   string `json:"Event_name"`
	EventText   string `json:"Event_text"`
	EventDetail string `json:"Event_detail"`
}

func (c *MXTV) FetchSchedule(ctx context.Context) (*Schedule, error) {
	dates := weekDates(c.now())

	programs, err := gather(ctx, len(dates), func(ctx context.Context, i int) ([]Program, error) {
		return c.fetchDate(ctx, dates[i])
	})
	if err != nil {
		return nil, err
	}

	return &Schedule{
		ChannelName: c.Name(),
		ChannelURL:  mustParseURL("https://s.mxtv.jp/bangumi/"),
		Programs:    programs,
	}, nil
}

func (c *MXTV) fetchDate(ctx context.Context, date time.Time) ([]Program, error) {
	u := fmt.Sprintf("%s/bangumi_file/json01/SV%dEPG%s.json", c.baseURL, c.subChannel, date.Format("20060102"))

	var raw []mxtvProgram
	if err := fetchJSON(ctx, c.client, c.Name(), u, &raw); err != nil {
		return nil, err
	}

	programs := make([]Program, 0, len(raw))
	for _, r := range raw {
		p, err := r.toProgram(c.subChannel)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func (r mxtvProgram) toProgram(subChannel int) (Program, error) {
	start, err := time.ParseInLocation("2006年01月02日15時04分05秒", r.StartTime, JST)
	if err != nil {
		return Program{}, &ParseError{Source: "TOKYO MX", Msg: fmt.Sprintf("bad start time %q", r.StartTime)}
	}

	// The station has no per-program pages; deep-link into the timetable
	// viewer positioned at this slot instead.
	link, _ := url.Parse(fmt.Sprintf("https://s.mxtv.jp/bangumi/program.html?date=%s&ch=%d&hm=%s",
		start.Format("20060102"), subChannel, start.Format("1504")))

	return Program{
		Title:       r.EventName,
		URL:         link,
		Description: strings.TrimSpace(r.EventText + "\n" + r.EventDetail),
		Start:       start,
	}, nil
}
