package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// FormField is one function input being edited.
type FormField struct {
	Key     string
	Label   string
	Param   codec.Param
	Options []string
	Value   string
}

// FormModel prompts for every input of a function in turn. Each value is
// validated as it is typed; Enter only advances past a valid value.
type FormModel struct {
	Title  string
	Fields []FormField

	enums  codec.EnumMapping
	cursor int

	Done      bool
	Cancelled bool
}

// NewFormModel builds a form for fn's inputs. Bool inputs start as "false".
func NewFormModel(fn contract.ABIEntry, enums codec.EnumMapping) FormModel {
	fields := make([]FormField, len(fn.Inputs))
	for i, p := range fn.Inputs {
		key := p.Key(i)
		fields[i] = FormField{
			Key:     key,
			Label:   p.DisplayName(key) + " (" + contract.DisplayType(p) + ")",
			Param:   p,
			Options: enums.Options(p),
		}
		if codec.EditorFor(p) == codec.EditorBool {
			fields[i].Value = codec.Format(codec.DefaultFor(p.Type))
		}
	}
	return FormModel{
		Title:  contract.DisplaySignature(fn),
		Fields: fields,
		enums:  enums,
	}
}

// Values returns the edited text keyed by input key.
func (m FormModel) Values() map[string]string {
	out := make(map[string]string, len(m.Fields))
	for _, f := range m.Fields {
		out[f.Key] = f.Value
	}
	return out
}

func (m FormModel) validate(i int) error {
	return codec.ValidateEnum(m.Fields[i].Value, m.Fields[i].Param, m.enums)
}

func (m FormModel) Init() tea.Cmd { return nil }

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Fields) == 0 {
		return m, nil
	}
	f := &m.Fields[m.cursor]

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Cancelled = true
		return m, tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.Fields)-1 {
			m.cursor++
		}
	case tea.KeyEnter, tea.KeyTab:
		if m.validate(m.cursor) != nil {
			return m, nil
		}
		if m.cursor == len(m.Fields)-1 {
			for i := range m.Fields {
				if m.validate(i) != nil {
					m.cursor = i
					return m, nil
				}
			}
			m.Done = true
			return m, tea.Quit
		}
		m.cursor++
	case tea.KeyBackspace:
		if r := []rune(f.Value); len(r) > 0 {
			f.Value = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		f.Value = ""
	case tea.KeySpace:
		f.Value += " "
	case tea.KeyRunes:
		f.Value += string(key.Runes)
	}
	return m, nil
}

func (m FormModel) View() string {
	if m.Cancelled || m.Done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("  "+m.Title) + "\n")

	for i, f := range m.Fields {
		prefix := "    "
		if i == m.cursor {
			prefix = "  ▸ "
		}
		sb.WriteString(prefix + StyleMeta.Render(f.Label) + "\n")

		value := f.Value
		switch {
		case value == "" && i == m.cursor:
			value = StyleDim.Render(codec.Placeholder(f.Param))
		case value == "":
		default:
			value = StyleValue.Render(value)
		}
		if i == m.cursor {
			value += "█"
		}
		sb.WriteString("      " + value + "\n")

		if hint := m.hint(i); hint != "" {
			sb.WriteString("      " + hint + "\n")
		}
	}

	sb.WriteString("\n" + StyleMeta.Render("  [ Enter ] next   [ ↑↓ ] move   [ ctrl+u ] clear   [ esc ] cancel") + "\n")
	return sb.String()
}

// hint is the line under a field: the validation error once something is
// typed, otherwise enum labels or the decoded date.
func (m FormModel) hint(i int) string {
	f := m.Fields[i]
	if f.Value != "" {
		if err := m.validate(i); err != nil {
			return StyleError.Render("✗ " + err.Error())
		}
	}
	if len(f.Options) > 0 {
		labels := make([]string, len(f.Options))
		for j, o := range f.Options {
			labels[j] = fmt.Sprintf("%d: %s", j, o)
		}
		return StyleInfo.Render(strings.Join(labels, "  "))
	}
	if codec.EditorFor(f.Param) == codec.EditorDateTime {
		if date, clock := codec.TimestampToDateTime(f.Value); date != "" {
			return StyleInfo.Render("= " + date + " " + clock + " UTC")
		}
	}
	return ""
}

// RunForm prompts for fn's inputs and returns the values keyed by input key.
// It returns nil when the user cancels. Functions without inputs return an
// empty map without starting the TUI.
func RunForm(fn contract.ABIEntry, enums codec.EnumMapping) (map[string]string, error) {
	m := NewFormModel(fn, enums)
	if len(m.Fields) == 0 {
		return map[string]string{}, nil
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}
	fm := final.(FormModel)
	if fm.Cancelled {
		return nil, nil
	}
	return fm.Values(), nil
}
