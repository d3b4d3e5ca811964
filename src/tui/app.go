// Package tui is a full-screen browser for the catalog
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apimgr/moviesaver/src/catalog"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

const (
	fieldTitle = iota
	fieldYear
	fieldPrice
)

// Model is the bubbletea model. It mutates the catalog it was given.
type Model struct {
	catalog *catalog.Catalog
	cursor  int
	mode    mode
	inputs  []textinput.Model
	focus   int
	status  string
	isError bool
	dirty   bool
	save    bool
	width   int
	height  int
}

// New returns a model browsing c
func New(c *catalog.Catalog) Model {
	labels := []string{"Title", "Release year", "Price"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Width = 40
		ti.CharLimit = 200
		inputs[i] = ti
	}
	return Model{catalog: c, inputs: inputs}
}

// SaveRequested reports whether the user chose save & exit
func (m Model) SaveRequested() bool { return m.save }

// Dirty reports whether the catalog changed during the session
func (m Model) Dirty() bool { return m.dirty }

// Cursor returns the selected 0-based row
func (m Model) Cursor() int { return m.cursor }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeAdd {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.isError = "", false

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.catalog.Len()-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeAdd
		m.focus = fieldTitle
		for i := range m.inputs {
			m.inputs[i].SetValue("")
			m.inputs[i].Blur()
		}
		return m, m.inputs[fieldTitle].Focus()
	case "d", "delete":
		removed, err := m.catalog.Delete(m.cursor + 1)
		if err != nil {
			m.status, m.isError = "Nothing to delete.", true
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("Deleted %q (%d)", removed.Title, removed.Year)
		if m.cursor >= m.catalog.Len() && m.cursor > 0 {
			m.cursor--
		}
	case "s":
		m.save = true
		return m, tea.Quit
	case "q", "esc":
		if m.dirty {
			m.status, m.isError = "Unsaved changes: s to save & exit, ctrl+c to discard.", true
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.status = "Add cancelled."
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.setFocus((m.focus + 1) % len(m.inputs))
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case tea.KeyEnter:
		if m.focus < fieldPrice {
			return m, m.setFocus(m.focus + 1)
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus must be called on the addressable copy held by Update
func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	title := m.inputs[fieldTitle].Value()
	movie := m.catalog.AddRaw(title, m.inputs[fieldYear].Value(), m.inputs[fieldPrice].Value())
	m.dirty = true
	m.mode = modeList
	m.cursor = m.catalog.Len() - 1
	m.inputs[m.focus].Blur()
	m.status = fmt.Sprintf("Added %q (%d)", movie.Title, movie.Year)
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Movie Database"))
	sb.WriteString("\n\n")

	if m.mode == modeAdd {
		sb.WriteString(m.formView())
	} else {
		sb.WriteString(m.listView())
	}

	sb.WriteString("\n")
	if m.status != "" {
		if m.isError {
			sb.WriteString(errorStyle.Render(m.status))
		} else {
			sb.WriteString(statusStyle.Render(m.status))
		}
		sb.WriteString("\n")
	}

	if m.mode == modeAdd {
		sb.WriteString(helpStyle.Render("Tab: next field • Enter: confirm • Esc: cancel"))
	} else {
		sb.WriteString(helpStyle.Render("↑/↓: move • a: add • d: delete • s: save & exit • q: quit"))
	}
	return sb.String()
}

func (m Model) listView() string {
	movies := m.catalog.Movies()
	if len(movies) == 0 {
		return helpStyle.Render(catalog.EmptyNotice) + "\n"
	}

	var sb strings.Builder
	for i, mv := range movies {
		line := fmt.Sprintf("%3d. %s", i+1, mv.Label())
		price := priceStyle.Render(mv.PriceString())
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render("> "+line) + "  " + price)
		} else {
			sb.WriteString(rowStyle.Render("  "+line) + "  " + price)
		}
		sb.WriteString("\n")
	}
	if m.cursor < len(movies) {
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("Last updated: " + movies[m.cursor].Timestamp))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) formView() string {
	labels := []string{"Title", "Year", "Price $"}
	var sb strings.Builder
	for i, in := range m.inputs {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-8s", labels[i])))
		sb.WriteString(in.View())
		if i < len(m.inputs)-1 {
			sb.WriteString("\n")
		}
	}
	return formStyle.Render(sb.String()) + "\n"
}

// NewProgram builds a full-screen program browsing c. Callers that need to stop it
// from outside (on a signal) keep the program and call Quit.
func NewProgram(c *catalog.Catalog, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(New(c), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}

// Wait runs p until it exits and returns the final model
func Wait(p *tea.Program) (Model, error) {
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected final model %T", final)
	}
	return m, nil
}

// Run starts the browser on c and returns the final model
func Run(c *catalog.Catalog) (Model, error) {
	return Wait(NewProgram(c))
}
