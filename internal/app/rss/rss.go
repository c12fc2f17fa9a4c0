// Package rss models the subset of RSS 2.0 emitted by this service.
package rss

import (
	"encoding/xml"
	"time"
)

// Item is one RSS <item>. Optional fields that are empty produce no element
// at all, not an empty one.
type Item struct {
	Title       string `xml:"title,omitempty"`
	Link        string `xml:"link,omitempty"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
}

// Channel is one feed. The channel-level description element is always
// emitted, even when empty.
type Channel struct {
	Title       string
	Link        string
	Description string
	Items       []Item
}

type document struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel channelXML `xml:"channel"`
}

type channelXML struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Items       []Item `xml:"item"`
}

// FormatDate renders t in the RFC 822 date-time format RSS 2.0 uses for
// pubDate elements.
func FormatDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04:05 -0700")
}

// Marshal renders the channel as a complete XML document, XML declaration
// included.
func (c *Channel) Marshal() ([]byte, error) {
	data, err := xml.MarshalIndent(&document{
		Version: "2.0",
		Channel: channelXML{
			Title:       c.Title,
			Link:        c.Link,
			Description: c.Description,
			Items:       c.Items,
		},
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}
