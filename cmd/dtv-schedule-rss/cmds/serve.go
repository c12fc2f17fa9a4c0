package cmds

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
	"github.com/dmingn/dtv-schedule-rss/internal/app/router"
	"github.com/dmingn/dtv-schedule-rss/internal/app/schedule"
)

var (
	port            int
	refreshInterval time.Duration
)

func NewServeCLI() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service that exposes one RSS feed per channel.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.Validate(); err != nil {
				return err
			}

			// One pooled HTTP client shared by all adapters.
			client := fetch.NewClient(nil, fetch.DefaultRetryPolicy())
			entries := schedule.Channels(client, conf.CacheTTL())

			r := router.NewEngine(entries)

			// Optional background refresh keeps the caches warm.
			if refreshInterval > 0 {
				router.Schedule(cmd.Context(), entries, refreshInterval)
			}

			return r.Run(fmt.Sprintf(":%d", port))
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8000, "Listen port of the HTTP service.")
	serveCmd.Flags().DurationVarP(&refreshInterval, "interval", "i", 0, "Interval for refreshing the schedule caches in the background, e.g. `1h`. 0 disables the refresh and schedules are fetched lazily.")

	return serveCmd
}
