package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/apimgr/moviesaver/src/backup"
	"github.com/apimgr/moviesaver/src/catalog"
	"github.com/apimgr/moviesaver/src/common/terminal"
	"github.com/apimgr/moviesaver/src/common/version"
	"github.com/apimgr/moviesaver/src/journal"
	"github.com/apimgr/moviesaver/src/model"
	"github.com/apimgr/moviesaver/src/paths"
	"github.com/apimgr/moviesaver/src/store"
	"github.com/apimgr/moviesaver/src/tui"
)

// getStoreConfig merges the storage config with the --data and --format flags
func getStoreConfig() store.Config {
	cfg := store.Config{
		Dir:       viper.GetString("storage.dir"),
		File:      viper.GetString("storage.file"),
		Format:    viper.GetString("storage.format"),
		Delimiter: viper.GetString("storage.delimiter"),
	}
	if dataDir != "" {
		cfg.Dir = dataDir
	}
	if storeFormat != "" {
		cfg.Format = storeFormat
		// an explicit format picks its own default file name
		cfg.File = ""
	}
	cfg.Dir = paths.ExpandHome(cfg.Dir)
	return cfg
}

func backupManager() (*backup.Manager, error) {
	dir := paths.BackupDir()
	if err := paths.CheckUserDir(dir); err != nil {
		return nil, fmt.Errorf("backup directory: %w", err)
	}
	return backup.NewManager(dir, version.Version), nil
}

// openStore returns the configured store, snapshotting before each save when
// storage.backups is positive. Without a usable backup directory the store saves
// without snapshots.
func openStore() (store.Store, error) {
	s, err := store.Open(getStoreConfig())
	if err != nil {
		return nil, err
	}
	keep := viper.GetInt("storage.backups")
	if keep <= 0 {
		return s, nil
	}
	mgr, err := backupManager()
	if err != nil {
		logger.Warn("automatic backups disabled", "error", err)
		return s, nil
	}
	return store.WithBackups(s, mgr, keep), nil
}

// openJournal returns nil when the journal is disabled or has no usable location;
// a nil journal discards entries
func openJournal() *journal.Journal {
	if !viper.GetBool("journal.enabled") {
		return nil
	}
	path := paths.JournalFile()
	if err := paths.CheckUserDir(path); err != nil {
		logger.Warn("journal disabled", "error", err)
		return nil
	}
	return journal.Open(path, sessionID,
		viper.GetInt("logging.max_size"), viper.GetInt("logging.max_files"))
}

func listingStyle(w io.Writer) catalog.Style {
	if terminal.ColorEnabled(w, viper.GetString("output.color"), noColor) {
		return tui.ListingStyle{Width: terminal.GetSize(w).Cols}
	}
	return catalog.Plain{}
}

// loadCatalog loads the store for the one-shot commands. Unlike the menu these
// refuse to continue from a corrupt file, since saving would overwrite it.
func loadCatalog(ctx context.Context, s store.Store, j *journal.Journal) (*catalog.Catalog, error) {
	movies, err := s.Load(ctx)
	if err != nil {
		record(j, journal.Entry{Action: journal.ActionLoad, Store: s.Path(), Error: err.Error()})
		return nil, fmt.Errorf("load %s: %w", s.Path(), err)
	}
	record(j, journal.Entry{Action: journal.ActionLoad, Store: s.Path(), Count: len(movies), Success: true})
	return catalog.New(movies), nil
}

func saveCatalog(ctx context.Context, s store.Store, j *journal.Journal, c *catalog.Catalog) error {
	movies := c.Movies()
	if err := s.Save(ctx, movies); err != nil {
		record(j, journal.Entry{Action: journal.ActionSave, Store: s.Path(), Count: len(movies), Error: err.Error()})
		return fmt.Errorf("save %s: %w", s.Path(), err)
	}
	logger.Info("catalog saved", "path", s.Path(), "count", len(movies))
	record(j, journal.Entry{Action: journal.ActionSave, Store: s.Path(), Count: len(movies), Success: true})
	return nil
}

func movieEntry(action journal.Action, position int, m model.Movie) journal.Entry {
	return journal.Entry{Action: action, Position: position, Title: m.Title, Year: m.Year, Success: true}
}

func record(j *journal.Journal, entry journal.Entry) {
	if err := j.Record(entry); err != nil {
		logger.Warn("journal write failed", "error", err)
	}
}
