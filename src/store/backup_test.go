package store

import (
	"context"
	"errors"
	"os"
	"testing"
)

type fakeSnapshotter struct {
	created []string
	pruned  []int
	err     error
}

func (f *fakeSnapshotter) Create(source string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, source)
	return "snap", nil
}

func (f *fakeSnapshotter) Prune(keep int) error {
	f.pruned = append(f.pruned, keep)
	return nil
}

func TestWithBackupsDisabled(t *testing.T) {
	s := openIn(t, t.TempDir(), FormatText)
	if WithBackups(s, &fakeSnapshotter{}, 0) != s {
		t.Error("WithBackups(keep=0) should return the store unchanged")
	}
	if WithBackups(s, nil, 3) != s {
		t.Error("WithBackups(nil) should return the store unchanged")
	}
}

func TestWithBackupsSnapshotsExistingFile(t *testing.T) {
	ctx := context.Background()
	snap := &fakeSnapshotter{}
	s := WithBackups(openIn(t, t.TempDir(), FormatJSON), snap, 2)

	// First save: nothing to back up yet.
	if err := s.Save(ctx, sampleMovies()); err != nil {
		t.Fatal(err)
	}
	if len(snap.created) != 0 {
		t.Errorf("created %d snapshots before file existed", len(snap.created))
	}

	if err := s.Save(ctx, sampleMovies()[:1]); err != nil {
		t.Fatal(err)
	}
	if len(snap.created) != 1 || snap.created[0] != s.Path() {
		t.Errorf("created = %v, want [%s]", snap.created, s.Path())
	}
	if len(snap.pruned) != 1 || snap.pruned[0] != 2 {
		t.Errorf("pruned = %v, want [2]", snap.pruned)
	}
}

func TestWithBackupsFailureStillSaves(t *testing.T) {
	ctx := context.Background()
	inner := openIn(t, t.TempDir(), FormatJSON)
	if err := inner.Save(ctx, sampleMovies()); err != nil {
		t.Fatal(err)
	}

	s := WithBackups(inner, &fakeSnapshotter{err: errors.New("disk full")}, 1)
	if err := s.Save(ctx, sampleMovies()[:1]); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, _ := s.Load(ctx)
	equalMovies(t, got, sampleMovies()[:1])

	if _, err := os.Stat(s.Path()); err != nil {
		t.Error(err)
	}
}
