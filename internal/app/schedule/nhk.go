package schedule

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

const nhkAPIBase = "https://api.nhk.jp"

// NHK serves the JSON program-guide API shared by the NHK services. One
// instance per service/area pair.
type NHK struct {
	name      string
	serviceID string
	areaID    string
	client    *fetch.Client
	baseURL   string
	now       func() time.Time
}

func NewNHK(client *fetch.Client, name, serviceID, areaID string) *NHK {
	return &NHK{
		name:      name,
		serviceID: serviceID,
		areaID:    areaID,
		client:    client,
		baseURL:   nhkAPIBase,
		now:       time.Now,
	}
}

func (c *NHK) Name() string {
	return c.name
}

func (c *NHK) FetchSchedule(ctx context.Context) (*Schedule, error) {
	dates := weekDates(c.now())

	programs, err := gather(ctx, len(dates), func(ctx context.Context, i int) ([]Program, error) {
		return c.fetchDate(ctx, dates[i])
	})
	if err != nil {
		return nil, err
	}

	return &Schedule{
		ChannelName: c.name,
		ChannelURL:  mustParseURL(fmt.Sprintf("https://www.nhk.jp/timetable/%s/tv/", c.areaID)),
		Programs:    programs,
	}, nil
}

type nhkAbout struct {
	Canonical string `json:"canonical"`
}

type nhkBroadcastEvent struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	About       *nhkAbout `json:"about"`
}

func (c *NHK) fetchDate(ctx context.Context, date time.Time) ([]Program, error) {
	u := fmt.Sprintf("%s/r7/pg/date/%s/%s/%s.json", c.baseURL, c.serviceID, c.areaID, date.Format("2006-01-02"))

	var payload map[string]struct {
		Publication []nhkBroadcastEvent `json:"publication"`
	}
	if err := fetchJSON(ctx, c.client, c.name, u, &payload); err != nil {
		return nil, err
	}

	service, ok := payload[c.serviceID]
	if !ok {
		return nil, &ParseError{Source: c.name, Msg: fmt.Sprintf("service %q missing from response", c.serviceID)}
	}

	programs := make([]Program, 0, len(service.Publication))
	for _, event := range service.Publication {
		p, err := c.toProgram(event)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func (c *NHK) toProgram(event nhkBroadcastEvent) (Program, error) {
	if strings.TrimSpace(event.Name) == "" {
		return Program{}, &ParseError{Source: c.name, Msg: "broadcast event without name"}
	}
	if event.StartDate.IsZero() {
		return Program{}, &ParseError{Source: c.name, Msg: "broadcast event without start date"}
	}

	// The canonical link is optional; a program without one still counts.
	var link *url.URL
	if event.About != nil && event.About.Canonical != "" {
		link, _ = url.Parse(event.About.Canonical)
	}

	return Program{
		Title:       event.Name,
		URL:         link,
		Description: event.Description,
		Start:       event.StartDate.In(JST),
	}, nil
}
