package schedule

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

const (
	tbsName     = "TBSテレビ"
	tbsSiteBase = "https://www.tbs.co.jp"
)

// TBS scrapes the station's weekly timetable pages: one for the current
// week and one for the next.
type TBS struct {
	client  *fetch.Client
	baseURL string
}

func NewTBS(client *fetch.Client) *TBS {
	return &TBS{
		client:  client,
		baseURL: tbsSiteBase,
	}
}

func (c *TBS) Name() string {
	return tbsName
}

func (c *TBS) FetchSchedule(ctx context.Context) (*Schedule, error) {
	pages := []string{
		c.baseURL + "/tv/index.html",
		c.baseURL + "/tv/nextweek.html",
	}

	programs, err := gather(ctx, len(pages), func(ctx context.Context, i int) ([]Program, error) {
		return c.fetchPage(ctx, pages[i])
	})
	if err != nil {
		return nil, err
	}

	return &Schedule{
		ChannelName: tbsName,
		ChannelURL:  mustParseURL("https://www.tbs.co.jp/tv/index.html"),
		Programs:    programs,
	}, nil
}

func (c *TBS) fetchPage(ctx context.Context, pageURL string) ([]Program, error) {
	body, err := c.client.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	programs, err := parseTBSPage(body)
	if err != nil {
		zap.L().Error("HTML parse error.",
			zap.String("url", pageURL),
			zap.String("preview", preview(body)),
			zap.Error(err))
		return nil, withPreview(err, body)
	}
	return programs, nil
}

// parseTBSPage reads every timetable cell that is not marked empty. Each
// cell carries a title, a detail-page link, a start-time label, and
// optionally a short description span.
func parseTBSPage(body []byte) ([]Program, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Source: tbsName, Msg: fmt.Sprintf("bad html: %v", err)}
	}

	var programs []Program
	var parseErr error
	doc.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		if td.HasClass("empty") {
			return true
		}
		p, err := parseTBSSlot(td)
		if err != nil {
			parseErr = err
			return false
		}
		programs = append(programs, p)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return programs, nil
}

func parseTBSSlot(td *goquery.Selection) (Program, error) {
	title := strings.TrimSpace(td.Find("strong").First().Text())
	if title == "" {
		return Program{}, &ParseError{Source: tbsName, Msg: "program cell without title"}
	}

	href, ok := td.Find("a").First().Attr("href")
	if !ok {
		return Program{}, &ParseError{Source: tbsName, Msg: "program cell without link"}
	}
	link, err := url.Parse("https://www.tbs.co.jp/tv/" + href)
	if err != nil {
		return Program{}, &ParseError{Source: tbsName, Msg: fmt.Sprintf("bad link %q", href)}
	}

	startText := strings.TrimSpace(td.Find("span.starttime").First().Text())
	start, err := time.ParseInLocation("200601021504", startText, JST)
	if err != nil {
		return Program{}, &ParseError{Source: tbsName, Msg: fmt.Sprintf("bad start time %q", startText)}
	}

	return Program{
		Title:       title,
		URL:         link,
		Description: strings.TrimSpace(td.Find("span.txtA").First().Text()),
		Start:       start,
	}, nil
}
