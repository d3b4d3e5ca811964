package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/moviesaver/src/journal"
	"github.com/apimgr/moviesaver/src/store"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert --to <format>",
	Short: "Copy the catalog into another storage format",
	Long: `Copy the whole catalog from one storage format to another in the same
storage directory. The source defaults to the configured format. A source
that cannot be decoded aborts the conversion.

After converting, set storage.format to keep using the new file.`,
	Example: `  moviesaver convert --to json
  moviesaver convert --from json --to sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromCfg := getStoreConfig()
		if convertFrom != "" {
			fromCfg.Format = convertFrom
			fromCfg.File = ""
		}
		toCfg := fromCfg
		toCfg.Format = convertTo
		toCfg.File = ""

		from, err := store.Open(fromCfg)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		to, err := store.Open(toCfg)
		if err != nil {
			return fmt.Errorf("destination: %w", err)
		}

		j := openJournal()
		defer j.Close()

		n, err := store.Convert(cmd.Context(), from, to)
		if err != nil {
			record(j, journal.Entry{Action: journal.ActionConvert, Store: to.Path(), Error: err.Error()})
			return err
		}
		logger.Info("catalog converted", "from", from.Path(), "to", to.Path(), "count", n)
		record(j, journal.Entry{Action: journal.ActionConvert, Store: to.Path(), Count: n, Success: true})

		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d movies: %s (%s) -> %s (%s)\n",
			n, from.Path(), from.Format(), to.Path(), to.Format())
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "source format (default: configured format)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "destination format: text, json, yaml, sqlite")
	convertCmd.MarkFlagRequired("to")
}
