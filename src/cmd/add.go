package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/moviesaver/src/journal"
)

var addCmd = &cobra.Command{
	Use:   "add <title> [year] [price]",
	Short: "Add a movie and save",
	Long: `Add a movie to the catalog and save it.
Year and price that are missing or not numbers are stored as 0.`,
	Example: `  moviesaver add "Inception" 2010 9.99`,
	Args:    cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var year, price string
		if len(args) > 1 {
			year = args[1]
		}
		if len(args) > 2 {
			price = args[2]
		}

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

		m := c.AddRaw(args[0], year, price)
		record(j, movieEntry(journal.ActionAdd, c.Len(), m))

		if err := saveCatalog(cmd.Context(), s, j, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added \"%s\" (%d) at %d\n", m.Title, m.Year, c.Len())
		return nil
	},
}
