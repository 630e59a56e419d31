package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// StudioModel is the Bubble Tea model for the interactive function navigator.
// It shows read functions, write functions and events in labelled sections,
// lets the user navigate with ↑↓ / j k, and exits with the selected function
// when Enter is pressed. Events are listed but not selectable. "/" starts a
// filter over function names, signatures and selectors.
type StudioModel struct {
	ContractName string
	Address      string
	Network      string

	abi    contract.ABI
	reads  []contract.ABIEntry // after the filter
	writes []contract.ABIEntry
	events []contract.ABIEntry
	cursor int // index into reads followed by writes

	filter    string
	filtering bool

	Selected *contract.ABIEntry
	Quitting bool
}

// NewStudioModel builds a navigator over abi.
func NewStudioModel(name, address, network string, abi contract.ABI) StudioModel {
	m := StudioModel{
		ContractName: name,
		Address:      address,
		Network:      network,
		abi:          abi,
		events:       abi.Events(),
	}
	m.applyFilter()
	return m
}

func (m *StudioModel) applyFilter() {
	m.reads, m.writes = nil, nil
	for _, e := range m.abi.Search(m.filter) {
		if e.IsReadFunction() {
			m.reads = append(m.reads, e)
		} else {
			m.writes = append(m.writes, e)
		}
	}
	m.cursor = 0
}

// Filter is the current function filter.
func (m StudioModel) Filter() string { return m.filter }

func (m StudioModel) navLen() int { return len(m.reads) + len(m.writes) }

func (m StudioModel) current() (contract.ABIEntry, bool) {
	switch {
	case m.cursor < len(m.reads):
		return m.reads[m.cursor], true
	case m.cursor < m.navLen():
		return m.writes[m.cursor-len(m.reads)], true
	}
	return contract.ABIEntry{}, false
}

func (m StudioModel) Init() tea.Cmd { return nil }

func (m StudioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.filtering {
		return m.updateFilter(key)
	}
	switch key.String() {
	case "/":
		m.filtering = true
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
			return m, nil
		}
		m.Quitting = true
		return m, tea.Quit
	case "q", "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.navLen()-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(m.navLen()-1, 0)
	case "enter", " ":
		if e, ok := m.current(); ok {
			m.Selected = &e
			return m, tea.Quit
		}
	}
	return m, nil
}

// updateFilter handles keys while the filter line has focus. Enter and the
// arrow keys hand control back to the list with the filter kept.
func (m StudioModel) updateFilter(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		m.Quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		m.applyFilter()
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyUp, tea.KeyDown:
		m.filtering = false
		return m.Update(key)
	case tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeySpace:
		m.filter += " "
		m.applyFilter()
	case tea.KeyRunes:
		m.filter += string(key.Runes)
		m.applyFilter()
	}
	return m, nil
}

func (m StudioModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder
	const sepWidth = 72

	title := "  Contract Studio  ·  " + m.ContractName
	if m.Network != "" {
		title += "  ·  " + m.Network
	}
	sb.WriteString(StyleTitle.Render(title) + "\n\n")

	if m.Address != "" {
		fmt.Fprintf(&sb, "  %-10s %s\n", StyleMeta.Render("Address"), StyleAddress.Render(m.Address))
	}
	fmt.Fprintf(&sb, "  %-10s %s · %s\n",
		StyleMeta.Render("ABI"),
		StyleInfo.Render(fmt.Sprintf("%d functions", m.navLen())),
		StyleMeta.Render(fmt.Sprintf("%d events", len(m.events))))
	if m.filtering || m.filter != "" {
		cursor := ""
		if m.filtering {
			cursor = "█"
		}
		fmt.Fprintf(&sb, "  %-10s %s\n", StyleMeta.Render("Filter"), StyleValue.Render("/"+m.filter+cursor))
	}
	sb.WriteString("\n")
	if m.navLen() == 0 {
		sb.WriteString(StyleMeta.Render(fmt.Sprintf("  no functions match %q", m.filter)) + "\n\n")
	}

	section := func(label string, n int) {
		hdr := fmt.Sprintf("  ── %s (%d) ", label, n)
		fill := max(sepWidth-len(hdr)-2, 0)
		sb.WriteString(StyleHeader.Render(hdr) + StyleMeta.Render(strings.Repeat("─", fill)) + "\n")
	}
	line := func(pos int, e contract.ABIEntry, name string) {
		prefix := "    "
		if pos == m.cursor {
			prefix = "  ▸ "
		}
		row := fmt.Sprintf("%s%s  %s%s", prefix,
			StyleMeta.Render(contract.SelectorHex(e)),
			name,
			StyleMeta.Render(strings.TrimPrefix(contract.DisplaySignature(e), e.Name)))
		if pos == m.cursor {
			row = StyleSelected.Render(row)
		}
		sb.WriteString(row + "\n")
	}

	if len(m.reads) > 0 {
		section("Read", len(m.reads))
		for i, e := range m.reads {
			line(i, e, StyleValue.Render(e.Name))
		}
		sb.WriteString("\n")
	}
	if len(m.writes) > 0 {
		section("Write", len(m.writes))
		for i, e := range m.writes {
			line(len(m.reads)+i, e, StyleWarning.Render(e.Name))
		}
		sb.WriteString("\n")
	}
	if len(m.events) > 0 {
		section("Events", len(m.events))
		for _, e := range m.events {
			sb.WriteString("    " + StyleInfo.Render(e.Name) +
				StyleMeta.Render(strings.TrimPrefix(contract.DisplaySignature(e), e.Name)) + "\n")
		}
		sb.WriteString("\n")
	}

	ruler := StyleMeta.Render(strings.Repeat("─", sepWidth))
	sb.WriteString(ruler + "\n")
	if e, ok := m.current(); ok {
		desc := contract.Signature(e)
		if !e.IsReadFunction() {
			desc += "  ·  encodes calldata only"
		}
		sb.WriteString(StyleMeta.Render("  "+desc) + "\n")
	}
	sb.WriteString(ruler + "\n\n")

	sb.WriteString(
		StyleMeta.Render("  [ ↑↓ / jk ]") + " navigate   " +
			StyleInfo.Render("[ Enter ]") + " select   " +
			StyleMeta.Render("[ / ]") + " filter   " +
			StyleMeta.Render("[ q ]") + " quit\n")

	return sb.String()
}

// RunStudio launches the navigator with altscreen and returns the selected
// function, or nil if the user quit.
func RunStudio(m StudioModel) (*contract.ABIEntry, error) {
	if len(m.abi.Functions()) == 0 {
		return nil, fmt.Errorf("%s has no functions", m.ContractName)
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("studio: %w", err)
	}
	fm := final.(StudioModel)
	if fm.Quitting {
		return nil, nil
	}
	return fm.Selected, nil
}
