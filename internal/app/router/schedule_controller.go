package router

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmingn/dtv-schedule-rss/internal/app/schedule"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>dtv-schedule-rss</title>
</head>
<body>
<h1>dtv-schedule-rss</h1>
<ul>
{{- range . }}
<li><a href="/{{ .Path }}">/{{ .Path }}</a> {{ .Channel.Name }}</li>
{{- end }}
</ul>
</body>
</html>
`))

// GetIndex lists the known feed paths and their display names.
func GetIndex(c *gin.Context) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, entries); err != nil {
		logger.Error("Failed to render the index page.", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetScheduleRSS renders one channel's current schedule as an RSS feed.
func GetScheduleRSS(c *gin.Context) {
	path := c.Param("path")

	channel, ok := channelsByPath[path]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	sched, err := channel.FetchSchedule(c.Request.Context())
	if err != nil {
		fields := []zap.Field{zap.String("path", path), zap.Error(err)}
		var parseErr *schedule.ParseError
		if errors.As(err, &parseErr) && parseErr.Preview != "" {
			fields = append(fields, zap.String("preview", parseErr.Preview))
		}
		logger.Error("Failed to fetch the schedule.", fields...)
		c.Status(http.StatusInternalServerError)
		return
	}

	data, err := sched.ToRSS().Marshal()
	if err != nil {
		logger.Error("Failed to marshal rss.", zap.String("path", path), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/xml", data)
}
