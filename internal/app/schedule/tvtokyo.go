package schedule

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

const (
	tvTokyoName    = "テレ東"
	tvTokyoAPIBase = "https://www.tv-tokyo.co.jp"
)

// TVTokyo serves one JSON document per calendar day, keyed by timetable
// slot. Only the main-service member ("1") of each slot is a program.
type TVTokyo struct {
	client  *fetch.Client
	baseURL string
	now     func() time.Time
}

func NewTVTokyo(client *fetch.Client) *TVTokyo {
	return &TVTokyo{
		client:  client,
		baseURL: tvTokyoAPIBase,
		now:     time.Now,
	}
}

func (c *TVTokyo) Name() string {
	return tvTokyoName
}

type tvTokyoSlot struct {
	URL         string `json:"url"`
	StartTime   string `json:"start_time"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c *TVTokyo) FetchSchedule(ctx context.Context) (*Schedule, error) {
	dates := weekDates(c.now())

	programs, err := gather(ctx, len(dates), func(ctx context.Context, i int) ([]Program, error) {
		return c.fetchDate(ctx, dates[i])
	})
	if err != nil {
		return nil, err
	}

	return &Schedule{
		ChannelName: tvTokyoName,
		ChannelURL:  mustParseURL("https://www.tv-tokyo.co.jp/timetable/broad_tvtokyo/thisweek/"),
		Programs:    programs,
	}, nil
}

func (c *TVTokyo) fetchDate(ctx context.Context, date time.Time) ([]Program, error) {
	u := fmt.Sprintf("%s/tbcms/assets/data/%s.json", c.baseURL, date.Format("20060102"))

	var payload map[string]map[string]tvTokyoSlot
	if err := fetchJSON(ctx, c.client, tvTokyoName, u, &payload); err != nil {
		return nil, err
	}

	// Slot keys are iterated in sorted order so the program sequence is
	// reproducible across runs.
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var programs []Program
	for _, k := range keys {
		slot, ok := payload[k]["1"]
		if !ok || slot.StartTime == "" {
			continue
		}
		p, err := slot.toProgram(date)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func (r tvTokyoSlot) toProgram(date time.Time) (Program, error) {
	hours, minutes, err := splitHourMinute(r.StartTime)
	if err != nil {
		return Program{}, &ParseError{Source: tvTokyoName, Msg: fmt.Sprintf("bad start time %q", r.StartTime)}
	}

	link, err := url.Parse("https:" + r.URL)
	if err != nil {
		return Program{}, &ParseError{Source: tvTokyoName, Msg: fmt.Sprintf("bad link %q", r.URL)}
	}

	return Program{
		Title:       r.Title,
		URL:         link,
		Description: r.Description,
		Start:       calcStart(date, hours, minutes),
	}, nil
}
