package cmd

import (
	"fmt"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	sigsvc "github.com/apimgr/moviesaver/src/signal"
	"github.com/apimgr/moviesaver/src/tui"
)

// programOptions are extra bubbletea options for the tui command
var programOptions []tea.ProgramOption

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit the catalog full-screen",
	Long: `Browse and edit the catalog full-screen.
Keys: a add, d delete, s save & exit, q quit, ctrl+c quit without saving.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		j := openJournal()
		defer j.Close()

		c, err := loadCatalog(cmd.Context(), s, j)
		if err != nil {
			return err
		}

		p := tui.NewProgram(c, programOptions...)
		// An interrupt quits the program so it can restore the terminal first.
		var interrupted atomic.Bool
		release := sigsvc.Intercept(func(os.Signal) bool {
			interrupted.Store(true)
			p.Quit()
			return true
		})
		final, err := tui.Wait(p)
		release()
		if interrupted.Load() {
			fmt.Fprintln(cmd.ErrOrStderr(), "Interrupted. Unsaved changes were discarded.")
			return sigsvc.ErrInterrupted
		}
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if !final.SaveRequested() {
			if final.Dirty() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Changes discarded.")
			}
			return nil
		}

		if err := saveCatalog(cmd.Context(), s, j, c); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Data saved. Goodbye!")
		return nil
	},
}
