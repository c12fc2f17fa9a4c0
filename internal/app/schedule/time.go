package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// JST is the fixed UTC+9 offset every broadcast start time is normalized to.
var JST = time.FixedZone("JST", 9*60*60)

// weekDates returns midnight JST for today and the next six days. The window
// is computed in the station's calendar day, not the server's local day.
func weekDates(now time.Time) []time.Time {
	t := now.In(JST)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, JST)

	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = day.AddDate(0, 0, i)
	}
	return dates
}

// calcStart resolves an hour/minute slot against its broadcast date.
// Stations bill slots before 04:00 as late-night extensions of the previous
// day, so an hour below 4 lands on the following calendar day. Hours of 24
// and above roll over naturally.
func calcStart(date time.Time, hours, minutes int) time.Time {
	if hours < 4 {
		date = date.AddDate(0, 0, 1)
	}
	return date.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}

// splitHourMinute parses an "HH:MM" slot label.
func splitHourMinute(s string) (int, int, error) {
	hourStr, minuteStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad time %q", s)
	}
	hours, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad time %q", s)
	}
	minutes, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad time %q", s)
	}
	return hours, minutes, nil
}
