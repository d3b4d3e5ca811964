package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2010", 2010},
		{" 2021 \n", 2021},
		{"-5", -5},
		{"", 0},
		{"abc", 0},
		{"20x1", 0},
		{"99999999999999999999", 0},
		{"2147483647", 2147483647},
		{"3000000000", 0},
		{"-2147483649", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseYear(tt.input); got != tt.want {
				t.Errorf("ParseYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"9.99", 9.99},
		{"12.5", 12.5},
		{" 3 ", 3},
		{"", 0},
		{"free", 0},
		{"NaN", 0},
		{"inf", 0},
		{"-1.25", -1.25},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParsePrice(tt.input); got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{9.99, "9.99"},
		{12.5, "12.50"},
		{0, "0.00"},
		{10, "10.00"},
		{1.005, "1.01"},
		{math.Inf(1), "+Inf"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestNewMovie(t *testing.T) {
	m := NewMovie("Inception", 2010, 9.99)

	if m.Title != "Inception" || m.Year != 2010 || m.Price != 9.99 {
		t.Errorf("NewMovie() = %+v", m)
	}
	if _, err := time.ParseInLocation(TimestampLayout, m.Timestamp, time.Local); err != nil {
		t.Errorf("Timestamp %q does not match layout: %v", m.Timestamp, err)
	}
}

func TestMovieStrings(t *testing.T) {
	m := Movie{Title: "Dune", Year: 2021, Price: 12.5}

	if got := m.PriceString(); got != "$12.50" {
		t.Errorf("PriceString() = %q, want '$12.50'", got)
	}
	if got := m.Label(); got != "Dune (2021)" {
		t.Errorf("Label() = %q, want 'Dune (2021)'", got)
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	if errors.Is(ErrInvalidSelection, ErrEmptyCatalog) {
		t.Error("ErrInvalidSelection should not match ErrEmptyCatalog")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Inception", "Inception"},
		{"a\nb", "a b"},
		{"a\r\nb", "a  b"},
		{"tab\there", "tab here"},
		{"Amélie", "Amélie"},
	}

	for _, tt := range tests {
		if got := CleanTitle(tt.input); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewMovieCleansTitle(t *testing.T) {
	if m := NewMovie("line\nbreak", 2000, 1); m.Title != "line break" {
		t.Errorf("Title = %q, want 'line break'", m.Title)
	}
}
