package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bytestruct/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	maxColumnWidth = 32
	chromeHeight   = 6
)

type viewerModel struct {
	layout   *schema.Struct
	filename string
	records  []record
	table    table.Model
	detail   bool
}

func newViewerModel(filename string, layout *schema.Struct, records []record) *viewerModel {
	names := columns(layout)
	cols := make([]table.Column, 0, len(names)+2)
	cols = append(cols, table.Column{Title: "#", Width: 6}, table.Column{Title: "offset", Width: 10})

	rows := make([]table.Row, len(records))
	widths := make([]int, len(names))
	for i, n := range names {
		widths[i] = len(n)
	}
	for i, r := range records {
		vals := cells(layout, r.value)
		for j, v := range vals {
			widths[j] = min(max(widths[j], len(v)), maxColumnWidth)
		}
		rows[i] = append(table.Row{strconv.Itoa(r.index), strconv.Itoa(r.offset)}, vals...)
	}
	for i, n := range names {
		cols = append(cols, table.Column{Title: n, Width: widths[i]})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#98FB98"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	t.SetStyles(styles)

	return &viewerModel{
		layout:   layout,
		filename: filename,
		records:  records,
		table:    t,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			m.detail = !m.detail
			return m, nil
		case "esc":
			m.detail = false
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(1, msg.Height-chromeHeight))
	}

	if m.detail {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *viewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bsview"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(fmt.Sprintf("%s (%d bytes, %s)", m.layout.Name(), m.layout.ByteLen(), m.layout.Order())))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString("No records.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	if m.detail {
		r := m.records[m.table.Cursor()]
		b.WriteString(detailStyle.Render(m.describe(r)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter details • q quit"))
	return b.String()
}

func (m *viewerModel) describe(r record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "record %d at offset %d\n\n", r.index, r.offset)
	for _, mem := range m.layout.Members() {
		if mem.Name == schema.Padding {
			continue
		}
		fmt.Fprintf(&b, "%4d  %-20s %-12s %s\n",
			r.offset+mem.Offset, mem.Name, typeStyle.Render(mem.Type.String()), formatValue(r.value[mem.Name]))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func runInteractive(filename string, layout *schema.Struct, records []record) error {
	p := tea.NewProgram(newViewerModel(filename, layout, records), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
