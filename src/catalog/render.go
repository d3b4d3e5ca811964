package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/apimgr/moviesaver/src/model"
)

const (
	// Header precedes a full listing
	Header = "=== Movie Database ==="
	// Separator follows each record in a full listing
	Separator = "---------------------"
	// EmptyNotice replaces the listing of an empty catalog
	EmptyNotice = "No movies in database."
)

// Style decorates rendered text. Plain leaves it unchanged.
type Style interface {
	Title(s string) string
	Muted(s string) string
	// Rule draws the separator between records
	Rule(s string) string
}

// Plain is the undecorated style used for non-terminal output
type Plain struct{}

func (Plain) Title(s string) string { return s }
func (Plain) Muted(s string) string { return s }
func (Plain) Rule(s string) string  { return s }

// Render writes every movie in order, each with its 1-based index.
// An empty catalog renders EmptyNotice alone.
func (c *Catalog) Render(w io.Writer) error {
	return c.RenderStyled(w, Plain{})
}

// RenderStyled is Render with a decorating style
func (c *Catalog) RenderStyled(w io.Writer, style Style) error {
	if style == nil {
		style = Plain{}
	}

	var sb strings.Builder
	if len(c.movies) == 0 {
		sb.WriteString(EmptyNotice + "\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString("\n" + style.Title(Header) + "\n")
	for i, m := range c.movies {
		writeMovie(&sb, i+1, m, style)
		sb.WriteString(style.Rule(Separator) + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderIndex writes the short "n. Title (Year)" list used to pick a movie
func (c *Catalog) RenderIndex(w io.Writer) error {
	var sb strings.Builder
	for i, m := range c.movies {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, m.Label())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMovie(sb *strings.Builder, index int, m model.Movie, style Style) {
	fmt.Fprintf(sb, "[%d] Title: %s\n", index, style.Title(m.Title))
	fmt.Fprintf(sb, "    Year: %d\n", m.Year)
	fmt.Fprintf(sb, "    Price: %s\n", m.PriceString())
	fmt.Fprintf(sb, "    Last Updated: %s\n", style.Muted(m.Timestamp))
}
