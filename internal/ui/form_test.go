package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

const dead = "0x000000000000000000000000000000000000dEaD"

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func function(t *testing.T, abi contract.ABI, name string) contract.ABIEntry {
	t.Helper()
	fn, err := abi.Function(name)
	require.NoError(t, err)
	return fn
}

func TestFormCollectsValues(t *testing.T) {
	m := NewFormModel(function(t, erc20ABI(t), "transfer"), nil)
	require.Len(t, m.Fields, 2)
	assert.Equal(t, "to (address)", m.Fields[0].Label)

	m, _ = press(t, m, keyRunes(dead), enter, keyRunes("1000"))
	assert.False(t, m.Done)
	m, cmd := press(t, m, enter)
	assert.True(t, m.Done)
	assert.NotNil(t, cmd)
	assert.Equal(t, map[string]string{"to": dead, "value": "1000"}, m.Values())
}

func TestFormBlocksInvalidValue(t *testing.T) {
	m := NewFormModel(function(t, erc20ABI(t), "balanceOf"), nil)

	m, _ = press(t, m, keyRunes("0x12"))
	assert.Contains(t, m.View(), "invalid address")

	m, _ = press(t, m, enter)
	assert.False(t, m.Done, "enter does not accept an invalid address")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, keyRunes(dead), enter)
	assert.True(t, m.Done)
	assert.Equal(t, dead, m.Values()["account"])
}

func TestFormBackspace(t *testing.T) {
	m := NewFormModel(function(t, erc20ABI(t), "balanceOf"), nil)
	m, _ = press(t, m, keyRunes("0xé"), backspace)
	assert.Equal(t, "0x", m.Fields[0].Value)
}

func TestFormEnumHints(t *testing.T) {
	vault := contract.ABI{{
		Name: "setStatus", Type: "function", StateMutability: "nonpayable",
		Inputs: []codec.Param{{Name: "status", Type: "uint8", InternalType: "enum Vault.Status"}},
	}}
	enums := codec.EnumMapping{"Vault.Status": {"Open", "Closed"}}
	m := NewFormModel(vault[0], enums)

	assert.Equal(t, "status (Status)", m.Fields[0].Label)
	assert.Contains(t, m.View(), "0: Open  1: Closed")

	m, _ = press(t, m, keyRunes("5"))
	assert.Contains(t, m.View(), "enum value out of range")
	m, _ = press(t, m, enter)
	assert.False(t, m.Done)
}

func TestFormDateTimeHint(t *testing.T) {
	fn := contract.ABIEntry{
		Name: "schedule", Type: "function", StateMutability: "nonpayable",
		Inputs: []codec.Param{{Name: "startTime", Type: "uint256"}},
	}
	m := NewFormModel(fn, nil)
	m, _ = press(t, m, keyRunes("1700000000"))
	assert.Contains(t, m.View(), "= 2023-11-14 22:13 UTC")
}

func TestFormBoolDefaultsFalse(t *testing.T) {
	fn := contract.ABIEntry{
		Name: "setPaused", Type: "function", StateMutability: "nonpayable",
		Inputs: []codec.Param{{Name: "paused", Type: "bool"}, {Type: "uint256"}},
	}
	m := NewFormModel(fn, nil)
	assert.Equal(t, "false", m.Fields[0].Value)
	assert.Equal(t, "arg1", m.Fields[1].Key)
	assert.Empty(t, m.Fields[1].Value)
}

func TestFormCancel(t *testing.T) {
	m := NewFormModel(function(t, erc20ABI(t), "balanceOf"), nil)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Cancelled)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestRunFormWithoutInputs(t *testing.T) {
	values, err := RunForm(function(t, erc20ABI(t), "totalSupply"), nil)
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.NotNil(t, values)
}
