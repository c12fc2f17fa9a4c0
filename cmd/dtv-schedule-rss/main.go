package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmingn/dtv-schedule-rss/cmd/dtv-schedule-rss/cmds"
)

func main() {
	cobra.CheckErr(cmds.NewRootCLI().ExecuteContext(context.Background()))
}
