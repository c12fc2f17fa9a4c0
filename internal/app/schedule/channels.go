package schedule

import (
	"time"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

// Entry binds one feed path to its channel. Paths derive from the station
// call signs.
type Entry struct {
	Path    string
	Channel Channel
}

// Channels builds the full channel registry in feed-index order. Every
// adapter shares the one fetch client and is wrapped in its own TTL cache.
func Channels(client *fetch.Client, ttl time.Duration) []Entry {
	adapters := []struct {
		path    string
		channel Channel
	}{
		{"joak-dtv", NewNHK(client, "NHK総合1・東京", "g1", "130")},
		{"joab-dtv", NewNHK(client, "NHK Eテレ1・東京", "e1", "130")},
		{"joax-dtv", NewNTV(client)},
		{"jorx-dtv", NewTBS(client)},
		{"jocx-dtv", NewFujiTV(client)},
		{"joex-dtv", NewTVAsahi(client)},
		{"jotx-dtv", NewTVTokyo(client)},
		{"jomx-dtv-1", NewMXTV(client, 1)},
		{"jomx-dtv-2", NewMXTV(client, 2)},
	}

	entries := make([]Entry, 0, len(adapters))
	for _, a := range adapters {
		entries = append(entries, Entry{
			Path:    a.path,
			Channel: NewCached(a.channel, ttl),
		})
	}
	return entries
}
