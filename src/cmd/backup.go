package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apimgr/moviesaver/src/journal"
	"github.com/apimgr/moviesaver/src/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage catalog snapshots",
	Long: `Snapshots are compressed copies of the catalog file with a checksummed
manifest. Set storage.backups to N to snapshot automatically before every save
and keep the newest N.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the current catalog file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(getStoreConfig())
		if err != nil {
			return err
		}
		mgr, err := backupManager()
		if err != nil {
			return err
		}
		name, err := mgr.Create(s.Path())
		if err != nil {
			return err
		}
		logger.Info("backup created", "name", name, "source", s.Path())
		fmt.Fprintf(cmd.OutOrStdout(), "Created backup %s\n", name)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List snapshots, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := backupManager()
		if err != nil {
			return err
		}
		backups, err := mgr.List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(backups) == 0 {
			fmt.Fprintf(out, "No backups in %s\n", mgr.Dir())
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCREATED\tSIZE\tSOURCE")
		for _, b := range backups {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Name, b.CreatedAt.Format("2006-01-02 15:04:05"), b.FormatSize(), b.Source)
		}
		return w.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Replace the catalog file with a snapshot",
	Long: `Replace the catalog file with a snapshot after verifying its checksum.
The current file is snapshotted first so the restore can be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(getStoreConfig())
		if err != nil {
			return err
		}
		mgr, err := backupManager()
		if err != nil {
			return err
		}

		manifest, err := mgr.Manifest(args[0])
		if err != nil {
			return err
		}
		if filepath.Ext(manifest.File) != filepath.Ext(s.Path()) {
			return fmt.Errorf("backup holds %s but the catalog is %s; use --format to match", manifest.File, s.Path())
		}

		j := openJournal()
		defer j.Close()

		if _, err := os.Stat(s.Path()); err == nil {
			prev, err := mgr.Create(s.Path())
			if err != nil {
				return fmt.Errorf("snapshot current catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved current catalog as %s\n", prev)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err := mgr.Restore(args[0], s.Path()); err != nil {
			record(j, journal.Entry{Action: journal.ActionRestore, Store: s.Path(), Error: err.Error()})
			return err
		}
		logger.Info("backup restored", "name", args[0], "dest", s.Path())
		record(j, journal.Entry{Action: journal.ActionRestore, Store: s.Path(), Title: args[0], Success: true})
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to %s\n", args[0], s.Path())
		return nil
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a snapshot",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := backupManager()
		if err != nil {
			return err
		}
		if err := mgr.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted backup %s\n", args[0])
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
}
