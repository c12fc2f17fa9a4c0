package cmds

import (
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
	"github.com/dmingn/dtv-schedule-rss/internal/app/schedule"
	"github.com/dmingn/dtv-schedule-rss/internal/pkg/util"
)

var (
	supportFileFormat = []string{"rss", "txt"}

	chPath string
	format string
)

func NewChannelCLI() *cobra.Command {
	channelCmd := &cobra.Command{
		Use:   "channel",
		Short: "Fetch one channel's schedule and write it to a file in the given format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.L()

			if err := conf.Validate(); err != nil {
				return err
			}

			if !slices.Contains(supportFileFormat, format) {
				return fmt.Errorf("file format not support: %s", format)
			}

			client := fetch.NewClient(nil, fetch.DefaultRetryPolicy())
			entries := schedule.Channels(client, conf.CacheTTL())

			idx := slices.IndexFunc(entries, func(e schedule.Entry) bool {
				return e.Path == chPath
			})
			if idx < 0 {
				paths := make([]string, 0, len(entries))
				for _, e := range entries {
					paths = append(paths, e.Path)
				}
				return fmt.Errorf("unknown channel %q, known channels: %s", chPath, strings.Join(paths, ", "))
			}
			channel := entries[idx].Channel

			sched, err := channel.FetchSchedule(cmd.Context())
			if err != nil {
				return err
			}

			var content []byte
			switch format {
			case "rss":
				content, err = sched.ToRSS().Marshal()
				if err != nil {
					return err
				}
			case "txt":
				var text string
				text, err = schedule.ToTxtFormat(sched)
				if err != nil {
					return err
				}
				content = []byte(text)
			}

			// Write the schedule file next to the executable.
			currDir, err := util.GetCurrentAbPathByExecutable()
			if err != nil {
				return err
			}
			outFileName := chPath + "." + format
			filePath := path.Join(currDir, outFileName)
			if err = os.WriteFile(filePath, content, 0o644); err != nil {
				logger.Error("Failed to write to file.", zap.Error(err))
				return err
			}

			logger.Sugar().Infof("A total of %d programs have been found for channel %s, all of which have been written to the file %s.",
				len(sched.Programs), sched.ChannelName, outFileName)

			return nil
		},
	}

	channelCmd.Flags().StringVarP(&chPath, "channel", "c", "", "Path key of the channel, e.g. `jorx-dtv`.")
	channelCmd.Flags().StringVarP(&format, "format", "f", "rss", "Format of the generated file, e.g. `rss` or `txt`.")

	_ = channelCmd.MarkFlagRequired("channel")

	return channelCmd
}
