package router

import (
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmingn/dtv-schedule-rss/internal/app/schedule"
)

var (
	logger *zap.Logger

	entries        []schedule.Entry
	channelsByPath map[string]schedule.Channel
)

// NewEngine builds the gin engine serving the index page and one RSS feed
// per registered channel.
func NewEngine(chEntries []schedule.Entry) *gin.Engine {
	logger = zap.L()

	gin.SetMode(gin.ReleaseMode)

	// Cache the channel registry
	entries = chEntries
	channelsByPath = make(map[string]schedule.Channel, len(entries))
	for _, e := range entries {
		channelsByPath[e.Path] = e.Channel
	}

	r := gin.New()

	// Request logging and panic recovery
	r.Use(ginzap.Ginzap(logger, "", false))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	// Index page listing the known feeds
	r.GET("/", GetIndex)
	// Per-channel RSS feed
	r.GET("/:path", GetScheduleRSS)

	return r
}
