package cmds

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmingn/dtv-schedule-rss/internal/app/config"
	"github.com/dmingn/dtv-schedule-rss/internal/pkg/logging"
	"github.com/dmingn/dtv-schedule-rss/internal/pkg/util"
)

var (
	cfgFile string

	conf *config.Config
)

func init() {
	cobra.OnInitialize(initConfig)
}

func NewRootCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dtv-schedule-rss",
		Short:         "Serve Japanese TV program schedules as RSS feeds.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(NewServeCLI())
	rootCmd.AddCommand(NewChannelCLI())
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path of the YAML config file.")

	return rootCmd
}

// initConfig loads the config file, creating a default one next to the
// executable when none exists.
func initConfig() {
	var err error
	var fPath string

	if cfgFile != "" {
		fPath = cfgFile
	} else {
		cfgHome, err := util.GetCurrentAbPathByExecutable()
		cobra.CheckErr(err)

		fPath = filepath.Join(cfgHome, "config.yml")

		if _, err = os.Stat(fPath); os.IsNotExist(err) {
			err = config.CreateDefaultCfg(fPath)
			cobra.CheckErr(err)
		}
	}

	conf, err = config.Load(fPath)
	cobra.CheckErr(err)

	cobra.CheckErr(logging.InitLogger(conf.Log))
}
