package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordmath/internal/ui/theme"
)

// AnswerChars are the characters accepted by an answer-only input: enough
// for decimals, negatives, fractions, mixed numbers, money and percentages.
const AnswerChars = "0123456789.-/,$% "

// TextInput wraps bubbles/textinput with the app's styling.
type TextInput struct {
	Model      textinput.Model
	AnswerOnly bool
	MaxWidth   int
	submitted  bool
	valid      bool
}

// NewTextInput creates a new styled, focused text input.
func NewTextInput(placeholder string, answerOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:      ti,
		AnswerOnly: answerOnly,
		MaxWidth:   maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. With AnswerOnly set, typed characters outside
// AnswerChars are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.AnswerOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" && !Allowed(kmsg.Text) {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Allowed reports whether every rune of s is in AnswerChars.
func Allowed(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(AnswerChars, r) {
			return false
		}
	}
	return true
}

// View renders the text input, followed by a mark once submitted.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the value and the submitted mark.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.submitted = false
	t.valid = false
}

// Submit marks the input as submitted with a grading result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Submitted reports whether Submit has been called since the last Reset.
func (t TextInput) Submitted() bool {
	return t.submitted
}
