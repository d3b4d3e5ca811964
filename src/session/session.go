// Package session runs the interactive menu over a catalog loaded from a store.
// A session owns its catalog exclusively from load until save-and-exit.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/apimgr/moviesaver/src/catalog"
	"github.com/apimgr/moviesaver/src/journal"
	"github.com/apimgr/moviesaver/src/model"
	"github.com/apimgr/moviesaver/src/store"
)

// Banner is printed once when the menu starts
const Banner = "=== Movie Database Management System ==="

// ErrInputClosed is returned when input ends before save-and-exit
var ErrInputClosed = errors.New("input closed before save and exit")

// State of the menu loop
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures a Session. Store is required.
type Options struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer // Warnings; defaults to Out.
	Store   store.Store
	Journal *journal.Journal // Optional.
	Logger  *slog.Logger     // Defaults to slog.Default().
	Style   catalog.Style    // Defaults to catalog.Plain.
}

// Session is one run of the menu loop
type Session struct {
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	store   store.Store
	journal *journal.Journal
	log     *slog.Logger
	style   catalog.Style

	catalog *catalog.Catalog
	state   State
}

// New returns a Running session with an empty catalog. Call Load to read the store.
func New(opts Options) *Session {
	s := &Session{
		in:      bufio.NewReader(opts.In),
		out:     opts.Out,
		errOut:  opts.Err,
		store:   opts.Store,
		journal: opts.Journal,
		log:     opts.Logger,
		style:   opts.Style,
		catalog: catalog.New(nil),
		state:   Running,
	}
	if s.errOut == nil {
		s.errOut = s.out
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.style == nil {
		s.style = catalog.Plain{}
	}
	return s
}

// Catalog returns the session's catalog
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// State returns the current loop state
func (s *Session) State() State {
	return s.state
}

// Load replaces the catalog with the store content. Any failure is reported as a
// warning and leaves an empty catalog; it never stops the session.
func (s *Session) Load(ctx context.Context) {
	movies, err := s.store.Load(ctx)
	if err != nil {
		s.warnf("Warning: could not load movies from %s: %v", s.store.Path(), err)
		s.warnf("Starting with an empty catalog.")
		s.log.Warn("catalog load failed", "path", s.store.Path(), "error", err)
		s.record(journal.Entry{Action: journal.ActionLoad, Store: s.store.Path(), Error: err.Error()})
		movies = nil
	} else {
		s.log.Info("catalog loaded", "path", s.store.Path(), "format", s.store.Format(), "count", len(movies))
		s.record(journal.Entry{Action: journal.ActionLoad, Store: s.store.Path(), Count: len(movies), Success: true})
	}
	s.catalog = catalog.New(movies)
}

// Run loads the store and drives the menu until save-and-exit.
// It returns nil after a successful final save.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, Banner)
	s.Load(ctx)

	for s.state == Running {
		s.printMenu()
		choice, err := s.readLine()
		if err != nil {
			s.log.Warn("menu input ended", "error", err, "unsaved", s.catalog.Len())
			return err
		}
		if err := s.Dispatch(ctx, choice); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch performs one menu choice. Unknown choices print a notice and keep the
// session Running. Only input loss or a failed final save return an error.
func (s *Session) Dispatch(ctx context.Context, choice string) error {
	if s.state != Running {
		return nil
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return s.addMovie()
	case "2":
		s.listMovies()
	case "3":
		return s.deleteMovie()
	case "4":
		return s.saveAndExit(ctx)
	default:
		fmt.Fprintln(s.out, "Invalid choice. Please try again.")
	}
	return nil
}

func (s *Session) printMenu() {
	fmt.Fprint(s.out, "\nMovie Database Menu:\n"+
		"1. Add new movie\n"+
		"2. View all movies\n"+
		"3. Delete a movie\n"+
		"4. Save & Exit\n"+
		"Choice: ")
}

func (s *Session) addMovie() error {
	title, err := s.prompt("Enter movie title: ")
	if err != nil {
		return err
	}
	year, err := s.prompt("Enter release year: ")
	if err != nil {
		return err
	}
	price, err := s.prompt("Enter current price: $")
	if err != nil {
		return err
	}

	m := s.catalog.AddRaw(title, year, price)
	fmt.Fprintf(s.out, "Added \"%s\" (%d)\n", m.Title, m.Year)

	s.log.Debug("movie added", "title", m.Title, "year", m.Year, "position", s.catalog.Len())
	s.record(journal.Entry{
		Action:   journal.ActionAdd,
		Position: s.catalog.Len(),
		Title:    m.Title,
		Year:     m.Year,
		Success:  true,
	})
	return nil
}

func (s *Session) listMovies() {
	if err := s.catalog.RenderStyled(s.out, s.style); err != nil {
		s.log.Warn("render catalog", "error", err)
	}
}

func (s *Session) deleteMovie() error {
	if s.catalog.Len() == 0 {
		fmt.Fprintln(s.out, "No movies to delete.")
		return nil
	}

	fmt.Fprintln(s.out, "\n=== Delete a Movie ===")
	s.catalog.RenderIndex(s.out)
	input, err := s.prompt("Enter the number of the movie to delete: ")
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(strings.TrimSpace(input))
	if err == nil {
		var removed model.Movie
		if removed, err = s.catalog.Delete(index); err == nil {
			s.deleted(index, removed)
			return nil
		}
	}
	fmt.Fprintln(s.out, "Invalid selection.")
	s.log.Debug("delete rejected", "input", strings.TrimSpace(input), "error", err)
	return nil
}

func (s *Session) deleted(index int, removed model.Movie) {
	fmt.Fprintf(s.out, "Deleted \"%s\" (%d)\n", removed.Title, removed.Year)
	s.log.Debug("movie deleted", "title", removed.Title, "remaining", s.catalog.Len())
	s.record(journal.Entry{
		Action:   journal.ActionDelete,
		Position: index,
		Title:    removed.Title,
		Year:     removed.Year,
		Success:  true,
	})
}

func (s *Session) saveAndExit(ctx context.Context) error {
	movies := s.catalog.Movies()
	if err := s.store.Save(ctx, movies); err != nil {
		s.warnf("Failed to save movies to %s: %v", s.store.Path(), err)
		s.log.Error("catalog save failed", "path", s.store.Path(), "error", err)
		s.record(journal.Entry{Action: journal.ActionSave, Store: s.store.Path(), Count: len(movies), Error: err.Error()})
		s.state = Terminated
		return fmt.Errorf("save catalog: %w", err)
	}

	s.log.Info("catalog saved", "path", s.store.Path(), "count", len(movies))
	s.record(journal.Entry{Action: journal.ActionSave, Store: s.store.Path(), Count: len(movies), Success: true})
	fmt.Fprintln(s.out, "Data saved. Goodbye!")
	s.state = Terminated
	return nil
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}

// readLine returns one line without its terminator. A final unterminated line is
// returned normally; end of input afterwards is ErrInputClosed.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) warnf(format string, args ...any) {
	fmt.Fprintf(s.errOut, format+"\n", args...)
}

func (s *Session) record(entry journal.Entry) {
	if err := s.journal.Record(entry); err != nil {
		s.log.Warn("journal write failed", "error", err)
	}
}
