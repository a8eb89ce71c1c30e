package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = variantItem{}

// variantItem is one spun result shown in the list.
type variantItem struct {
	entry int
	text  string
}

func (i variantItem) FilterValue() string { return i.text }

// Title is the first line; descriptions can span many.
func (i variantItem) Title() string {
	first, _, _ := strings.Cut(i.text, "\n")
	return first
}

func (i variantItem) Description() string {
	desc := fmt.Sprintf("entry %d", i.entry+1)
	if lines := strings.Count(i.text, "\n"); lines > 0 {
		desc = fmt.Sprintf("%s • +%d lines", desc, lines)
	}
	return desc
}
