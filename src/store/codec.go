package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apimgr/moviesaver/src/model"
)

// Codec encodes and decodes a whole catalog to a byte stream
type Codec interface {
	Encode(w io.Writer, movies []model.Movie) error
	Decode(r io.Reader) ([]model.Movie, error)
	Format() Format
}

// TextCodec writes one movie per line as timestamp, title, year and price joined by
// Delimiter. Lines that do not split into exactly four fields are skipped on decode.
//
// A title containing the delimiter shifts the fields and the line is dropped on the next
// load. This is a known limitation of the format; use the json, yaml or sqlite format for
// such titles.
type TextCodec struct {
	Delimiter rune
}

func (c TextCodec) delim() string {
	if c.Delimiter == 0 {
		return DefaultDelimiter
	}
	return string(c.Delimiter)
}

func (c TextCodec) Format() Format { return FormatText }

func (c TextCodec) Encode(w io.Writer, movies []model.Movie) error {
	bw := bufio.NewWriter(w)
	d := c.delim()
	for _, m := range movies {
		line := strings.Join([]string{
			m.Timestamp,
			m.Title,
			strconv.Itoa(m.Year),
			strconv.FormatFloat(m.Price, 'f', -1, 64),
		}, d)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write movie: %w", err)
		}
	}
	return bw.Flush()
}

func (c TextCodec) Decode(r io.Reader) ([]model.Movie, error) {
	d := c.delim()
	br := bufio.NewReader(r)

	var (
		movies  []model.Movie
		skipped int
		lineNo  int
	)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")

		parts := strings.Split(line, d)
		if len(parts) != 4 {
			if strings.TrimSpace(line) != "" {
				skipped++
				slog.Debug("skipping malformed catalog line", "line", lineNo, "fields", len(parts))
			}
		} else {
			movies = append(movies, model.Movie{
				Timestamp: parts[0],
				Title:     parts[1],
				Year:      model.ParseYear(parts[2]),
				Price:     model.ParsePrice(parts[3]),
			})
		}
		if err != nil {
			break
		}
	}
	if skipped > 0 {
		slog.Info("skipped malformed catalog lines", "count", skipped, "loaded", len(movies))
	}
	return movies, nil
}

// JSONCodec stores the catalog as one pretty-printed JSON array
type JSONCodec struct{}

func (JSONCodec) Format() Format { return FormatJSON }

func (JSONCodec) Encode(w io.Writer, movies []model.Movie) error {
	if movies == nil {
		movies = []model.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (JSONCodec) Decode(r io.Reader) ([]model.Movie, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var movies []model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return movies, nil
}

// YAMLCodec stores the catalog as a YAML sequence of mappings
type YAMLCodec struct{}

func (YAMLCodec) Format() Format { return FormatYAML }

func (YAMLCodec) Encode(w io.Writer, movies []model.Movie) error {
	if movies == nil {
		movies = []model.Movie{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(movies); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (YAMLCodec) Decode(r io.Reader) ([]model.Movie, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var movies []model.Movie
	if err := yaml.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return movies, nil
}
