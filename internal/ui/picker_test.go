package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contractItems = []PickerItem{
	{Label: "Token", SubLabel: "builtin:erc20", Value: "Token"},
	{Label: "Vault", SubLabel: "0xdead", Value: "Vault"},
	{Label: "Router", SubLabel: "abis/Router.json", Value: "Router"},
}

func TestPickerFilter(t *testing.T) {
	m := pickerModel{title: "Select a contract", items: contractItems}
	assert.Len(t, m.visible(), 3)

	m, _ = press(t, m, keyRunes("ro"))
	require.Len(t, m.visible(), 1)
	assert.Equal(t, "Router", m.visible()[0].Label)
	assert.Contains(t, m.View(), "filter: ro")

	m, _ = press(t, m, keyRunes("x"))
	assert.Empty(t, m.visible())
	assert.Contains(t, m.View(), "no matches")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, m.visible(), 3)
}

func TestPickerMatchesSubLabel(t *testing.T) {
	m, _ := press(t, pickerModel{items: contractItems}, keyRunes("ERC20"))
	require.Len(t, m.visible(), 1)
	assert.Equal(t, "Token", m.visible()[0].Value)
}

func TestPickerSelect(t *testing.T) {
	m, cmd := press(t, pickerModel{items: contractItems}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.selected)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Vault", m.selected.Value)
}

func TestPickerCancel(t *testing.T) {
	m, _ := press(t, pickerModel{items: contractItems}, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestPickItemShortcuts(t *testing.T) {
	_, err := PickItem("none", nil)
	assert.ErrorIs(t, err, ErrNothingToPick)

	v, err := PickItem("one", contractItems[:1])
	require.NoError(t, err)
	assert.Equal(t, "Token", v)
}
