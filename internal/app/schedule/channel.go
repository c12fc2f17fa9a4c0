// Package schedule defines the common Program/Schedule shape, the Channel
// capability, the per-channel TTL cache, and one adapter per broadcaster
// translating that station's native schedule format.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmingn/dtv-schedule-rss/internal/app/rss"
)

// Channel fetches the current schedule of one broadcaster.
type Channel interface {
	Name() string
	FetchSchedule(ctx context.Context) (*Schedule, error)
}

// Program is one scheduled broadcast. Start always carries the JST offset.
type Program struct {
	Title       string
	URL         *url.URL // optional deep link to a program detail page
	Description string
	Start       time.Time
}

// rssDescription prefixes the description with the start time so feed
// readers show when the program airs.
func (p Program) rssDescription() string {
	return strings.TrimSpace(p.Start.Format("01/02 15:04") + "\n\n" + p.Description)
}

// rssPubDate shifts the start a week into the past. Feed readers commonly
// hide items whose pubDate has not happened yet.
func (p Program) rssPubDate() time.Time {
	return p.Start.AddDate(0, 0, -7)
}

func (p Program) toRSSItem() rss.Item {
	var link string
	if p.URL != nil {
		link = p.URL.String()
	}
	return rss.Item{
		Title:       p.Title,
		Link:        link,
		Description: p.rssDescription(),
		PubDate:     rss.FormatDate(p.rssPubDate()),
	}
}

// Schedule is one channel's full listing for the fetch window. It is built
// fresh on every cache miss and never mutated afterwards.
type Schedule struct {
	ChannelName string
	ChannelURL  *url.URL
	Programs    []Program
}

// ToRSS maps the schedule onto the RSS 2.0 shape, items in program order.
func (s *Schedule) ToRSS() *rss.Channel {
	items := make([]rss.Item, 0, len(s.Programs))
	for _, p := range s.Programs {
		items = append(items, p.toRSSItem())
	}
	return &rss.Channel{
		Title: s.ChannelName,
		Link:  s.ChannelURL.String(),
		Items: items,
	}
}

// ToTxtFormat renders the schedule as a plain-text listing, one program per
// line.
func ToTxtFormat(s *Schedule) (string, error) {
	if len(s.Programs) == 0 {
		return "", errors.New("no programs found")
	}

	var sb strings.Builder
	for _, p := range s.Programs {
		var link string
		if p.URL != nil {
			link = p.URL.String()
		}
		sb.WriteString(fmt.Sprintf("%s\t%s\t%s\n", p.Start.Format("01/02 15:04"), p.Title, link))
	}
	return sb.String(), nil
}

// mustParseURL is for URL constants known to be valid.
func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}
