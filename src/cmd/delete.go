package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apimgr/moviesaver/src/journal"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <index>",
	Aliases: []string{"rm"},
	Short:   "Delete the movie at a 1-based index and save",
	Args:    cobra.ExactArgs(1),
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

		removed, err := c.DeleteText(args[0])
		if err != nil {
			return err
		}
		index, _ := strconv.Atoi(strings.TrimSpace(args[0]))
		record(j, movieEntry(journal.ActionDelete, index, removed))

		if err := saveCatalog(cmd.Context(), s, j, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted \"%s\" (%d)\n", removed.Title, removed.Year)
		return nil
	},
}
