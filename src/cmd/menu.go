package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/apimgr/moviesaver/src/session"
	sigsvc "github.com/apimgr/moviesaver/src/signal"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu (default)",
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	j := openJournal()
	defer j.Close()
	// The process exits on interrupt, so flush the journal before it goes.
	release := sigsvc.Intercept(func(os.Signal) bool {
		j.Close()
		return false
	})
	defer release()

	sess := session.New(session.Options{
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
		Store:   s,
		Journal: j,
		Logger:  logger,
		Style:   listingStyle(cmd.OutOrStdout()),
	})
	return sess.Run(cmd.Context())
}
