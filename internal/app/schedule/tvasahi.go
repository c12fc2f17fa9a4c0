package schedule

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

const (
	tvAsahiName     = "テレビ朝日"
	tvAsahiSiteBase = "https://www.tv-asahi.co.jp"
)

var tvAsahiDayRe = regexp.MustCompile(`(\d+)月(\d+)日`)

// TVAsahi scrapes the station's weekly timetable pages. The page lays the
// week out as seven date columns, each holding one small table per program.
type TVAsahi struct {
	client  *fetch.Client
	baseURL string
	now     func() time.Time
}

func NewTVAsahi(client *fetch.Client) *TVAsahi {
	return &TVAsahi{
		client:  client,
		baseURL: tvAsahiSiteBase,
		now:     time.Now,
	}
}

func (c *TVAsahi) Name() string {
	return tvAsahiName
}

func (c *TVAsahi) FetchSchedule(ctx context.Context) (*Schedule, error) {
	pages := []string{
		c.baseURL + "/bangumi/index.html",
		c.baseURL + "/bangumi/next.html",
	}

	year := c.now().In(JST).Year()
	programs, err := gather(ctx, len(pages), func(ctx context.Context, i int) ([]Program, error) {
		return c.fetchPage(ctx, pages[i], year)
	})
	if err != nil {
		return nil, err
	}

	return &Schedule{
		ChannelName: tvAsahiName,
		ChannelURL:  mustParseURL("https://www.tv-asahi.co.jp/bangumi/"),
		Programs:    programs,
	}, nil
}

func (c *TVAsahi) fetchPage(ctx context.Context, pageURL string, year int) ([]Program, error) {
	body, err := c.client.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	programs, err := parseTVAsahiPage(body, year)
	if err != nil {
		zap.L().Error("HTML parse error.",
			zap.String("url", pageURL),
			zap.String("preview", preview(body)),
			zap.Error(err))
		return nil, withPreview(err, body)
	}
	return programs, nil
}

// parseTVAsahiDay resolves a day label like "1月2日(月)" to midnight JST.
// The label carries no year, so the given clock year is assumed; this is
// wrong for the week spanning a December-to-January rollover, a limitation
// inherited from the site.
func parseTVAsahiDay(s string, year int) (time.Time, error) {
	m := tvAsahiDayRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, &ParseError{Source: tvAsahiName, Msg: fmt.Sprintf("bad day label %q", s)}
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, JST), nil
}

func parseTVAsahiPage(body []byte, year int) ([]Program, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Source: tvAsahiName, Msg: fmt.Sprintf("bad html: %v", err)}
	}

	dayRow := doc.Find("tr#ttDay")
	if dayRow.Length() == 0 {
		return nil, &ParseError{Source: tvAsahiName, Msg: "day header row not found"}
	}

	var dates []time.Time
	var parseErr error
	dayRow.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		if td.HasClass("none") {
			return true
		}
		date, err := parseTVAsahiDay(strings.TrimSpace(td.Text()), year)
		if err != nil {
			parseErr = err
			return false
		}
		dates = append(dates, date)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	columns := doc.Find(`td[valign="top"]`)
	if len(dates) != 7 || columns.Length() != 7 {
		return nil, &ParseError{
			Source: tvAsahiName,
			Msg:    fmt.Sprintf("unexpected timetable shape: %d dates, %d columns", len(dates), columns.Length()),
		}
	}

	var programs []Program
	columns.EachWithBreak(func(i int, td *goquery.Selection) bool {
		td.Find("table.new_day").EachWithBreak(func(_ int, slot *goquery.Selection) bool {
			p, err := parseTVAsahiSlot(slot, dates[i])
			if err != nil {
				parseErr = err
				return false
			}
			programs = append(programs, p)
			return true
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return programs, nil
}

func parseTVAsahiSlot(slot *goquery.Selection, date time.Time) (Program, error) {
	minText := strings.TrimSpace(slot.Find("span.min").First().Text())
	hours, minutes, err := splitHourMinute(minText)
	if err != nil {
		return Program{}, &ParseError{Source: tvAsahiName, Msg: fmt.Sprintf("bad start time %q", minText)}
	}

	name := slot.Find("span.prog_name").First()
	if name.Length() == 0 {
		return Program{}, &ParseError{Source: tvAsahiName, Msg: "program slot without name"}
	}
	title := strings.TrimSpace(name.Text())

	href, ok := name.Find("a").First().Attr("href")
	if !ok {
		return Program{}, &ParseError{Source: tvAsahiName, Msg: "program slot without link"}
	}
	link, err := url.Parse("https://www.tv-asahi.co.jp/" + href)
	if err != nil {
		return Program{}, &ParseError{Source: tvAsahiName, Msg: fmt.Sprintf("bad link %q", href)}
	}

	return Program{
		Title:       title,
		URL:         link,
		Description: strings.TrimSpace(slot.Find("span.expo_org").First().Text()),
		Start:       calcStart(date, hours, minutes),
	}, nil
}
