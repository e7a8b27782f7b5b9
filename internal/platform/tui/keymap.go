package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PlayAction is a player command derived from input.
type PlayAction int

const (
	PlayActionNone PlayAction = iota
	PlayActionUp
	PlayActionDown
	PlayActionLeft
	PlayActionRight
	PlayActionRotate
	PlayActionHint
	PlayActionReset
	PlayActionNext
	PlayActionQuit
)

// KeyMapper translates Bubble Tea key messages to play actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a play action.
// Returns the action (may be PlayActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action PlayAction, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q", "esc":
		return PlayActionQuit, true
	}

	switch key {
	case "w", "up", "k": // vim-style k for up
		return PlayActionUp, false
	case "s", "down", "j":
		return PlayActionDown, false
	case "a", "left", "h":
		return PlayActionLeft, false
	case "d", "right", "l":
		return PlayActionRight, false
	case " ", "enter":
		return PlayActionRotate, false
	case "?", "p":
		return PlayActionHint, false
	case "r":
		return PlayActionReset, false
	case "n":
		return PlayActionNext, false
	}

	return PlayActionNone, false
}
