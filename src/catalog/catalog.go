// Package catalog holds the ordered, in-memory movie collection for a session
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apimgr/moviesaver/src/model"
)

// Catalog is an ordered sequence of movies. Positions are 1-based and recomputed on every
// view; duplicates are allowed. The zero value is an empty catalog ready to use.
type Catalog struct {
	movies []model.Movie
}

// New returns a catalog holding a copy of movies, in order
func New(movies []model.Movie) *Catalog {
	c := &Catalog{}
	if len(movies) > 0 {
		c.movies = append(make([]model.Movie, 0, len(movies)), movies...)
	}
	return c
}

// Len returns the number of movies
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movies returns a copy of the sequence
func (c *Catalog) Movies() []model.Movie {
	out := make([]model.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// At returns the movie at the 1-based index
func (c *Catalog) At(index int) (model.Movie, error) {
	if index < 1 || index > len(c.movies) {
		return model.Movie{}, fmt.Errorf("%w: %d", model.ErrInvalidSelection, index)
	}
	return c.movies[index-1], nil
}

// Add appends a movie stamped with the current time and returns it
func (c *Catalog) Add(title string, year int, price float64) model.Movie {
	m := model.NewMovie(title, year, price)
	c.movies = append(c.movies, m)
	return m
}

// AddRaw appends a movie from free-text input. Unparsable year and price become 0.
func (c *Catalog) AddRaw(title, year, price string) model.Movie {
	return c.Add(strings.TrimSpace(title), model.ParseYear(year), model.ParsePrice(price))
}

// Delete removes the movie at the 1-based index and returns it.
// The catalog is left untouched when the index is out of range.
func (c *Catalog) Delete(index int) (model.Movie, error) {
	m, err := c.At(index)
	if err != nil {
		return model.Movie{}, err
	}
	c.movies = append(c.movies[:index-1], c.movies[index:]...)
	return m, nil
}

// DeleteText parses a free-text 1-based index and deletes that movie
func (c *Catalog) DeleteText(input string) (model.Movie, error) {
	index, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return model.Movie{}, fmt.Errorf("%w: %q", model.ErrInvalidSelection, strings.TrimSpace(input))
	}
	return c.Delete(index)
}
