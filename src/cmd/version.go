package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/moviesaver/src/common/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s %s\n", getBinaryName(), info.String())
		if versionShort {
			return nil
		}
		fmt.Fprintf(out, "\n%s\n", info.Full())
		if version.IsDev() {
			fmt.Fprintln(out, "\nDevelopment build")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version line")
}
