package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/apimgr/moviesaver/src/model"
)

// Snapshotter copies a data file aside before it is overwritten
type Snapshotter interface {
	Create(source string) (string, error)
	Prune(keep int) error
}

// backedUp snapshots the existing file before delegating Save
type backedUp struct {
	Store
	snap Snapshotter
	keep int
}

// WithBackups wraps s so that every Save first snapshots the current file and keeps at
// most keep snapshots. keep <= 0 returns s unchanged. A failed snapshot is logged and
// does not prevent the save.
func WithBackups(s Store, snap Snapshotter, keep int) Store {
	if keep <= 0 || snap == nil {
		return s
	}
	return &backedUp{Store: s, snap: snap, keep: keep}
}

func (b *backedUp) Save(ctx context.Context, movies []model.Movie) error {
	if _, err := os.Stat(b.Path()); err == nil {
		if name, err := b.snap.Create(b.Path()); err != nil {
			slog.Warn("backup before save failed", "path", b.Path(), "error", err)
		} else {
			slog.Debug("backup created", "name", name)
			if err := b.snap.Prune(b.keep); err != nil {
				slog.Warn("prune backups failed", "error", err)
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("stat before backup failed", "path", b.Path(), "error", err)
	}
	return b.Store.Save(ctx, movies)
}
