package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/moviesaver/src/model"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the catalog",
	Args:    cobra.NoArgs,
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

		out := cmd.OutOrStdout()
		switch getOutputFormat() {
		case "json":
			movies := c.Movies()
			if movies == nil {
				movies = []model.Movie{}
			}
			data, err := json.MarshalIndent(movies, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		case "yaml", "yml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(c.Movies()); err != nil {
				return err
			}
			return enc.Close()
		case "table", "":
			return c.RenderStyled(out, listingStyle(out))
		default:
			return fmt.Errorf("unknown output format %q (supported: table, json, yaml)", getOutputFormat())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "output format: table, json, yaml")
}

func getOutputFormat() string {
	if listOutput != "" {
		return strings.ToLower(listOutput)
	}
	return strings.ToLower(viper.GetString("output.format"))
}
