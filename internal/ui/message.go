package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSpun MsgKind = iota
)

type spunData struct {
	kind   models.Kind
	result *tasks.GenerateResult
	err    error
}

// spunMsg is the constructor for [MsgSpun]
func spunMsg(kind models.Kind, result *tasks.GenerateResult, err error) Msg {
	return Msg{kind: MsgSpun, data: spunData{kind: kind, result: result, err: err}}
}
