package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"landctl/internal/landing"
)

type helpEntry struct {
	key  string
	desc string
}

func helpEntries(anonymous bool) []helpEntry {
	if anonymous {
		return []helpEntry{
			{"r", "reload"},
			{"y", "copy pull request URL"},
			{"?", "toggle help"},
			{"q", "quit"},
		}
	}
	return []helpEntry{
		{"enter", "request landing"},
		{"a", "acknowledge warnings"},
		{"r", "reload status and checks"},
		{"c", "cancel the landing job"},
		{"v", "view the landing queue"},
		{"y", "copy pull request URL"},
		{"up/down", "scroll description"},
		{"?", "toggle help"},
		{"q", "quit"},
	}
}

func (m *Model) helpLine() string {
	if m.confirm.IsOpen() {
		return "left/right select  enter choose  y/n  esc close"
	}
	if m.queue.IsOpen() {
		return "up/down move  r refresh  esc close"
	}
	if m.helpOpen {
		return "esc close help"
	}
	if m.machine.Snapshot().Anonymous {
		return "r reload  y copy url  ? help  q quit"
	}
	switch m.action.State {
	case landing.GateNeedsAck:
		return "a acknowledge  r reload  ? help  q quit"
	case landing.GateReady:
		return "enter land  r reload  v queue  ? help  q quit"
	case landing.GateSubmitFailed:
		return "enter retry  r reload  ? help  q quit"
	case landing.GateInFlight:
		return "c cancel  v queue  r reload  ? help  q quit"
	case landing.GateBlocked:
		return "r reload  v queue  ? help  q quit"
	default:
		return "r reload  v queue  y copy url  ? help  q quit"
	}
}

func (m *Model) helpOverlayView(maxWidth, maxHeight int) (string, int) {
	if !m.helpOpen {
		return "", 0
	}
	entries := helpEntries(m.machine.Snapshot().Anonymous)
	keyWidth := 0
	for _, entry := range entries {
		if w := xansi.StringWidth(entry.key); w > keyWidth {
			keyWidth = w
		}
	}

	contentWidth := 0
	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		row := padToWidth(entry.key, keyWidth) + "  " + entry.desc
		if w := xansi.StringWidth(row); w > contentWidth {
			contentWidth = w
		}
		rows = append(rows, row)
	}

	width := contentWidth + 4
	if width < minListWidth {
		width = minListWidth
		contentWidth = width - 4
	}
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
		contentWidth = max(1, width-4)
	}

	title := truncateToWidth("Keys", contentWidth)
	lines := []string{contextMenuHeaderStyle.Render(" " + padToWidth(title, contentWidth) + " ")}
	for _, row := range rows {
		row = truncateToWidth(row, contentWidth)
		lines = append(lines, menuDropStyle.Render(" "+padToWidth(row, contentWidth)+" "))
	}

	height := len(lines) + 2
	x := 0
	y := 1
	if maxWidth > 0 {
		x = max(0, (maxWidth-width)/2)
	}
	if maxHeight > 0 {
		y = max(1, (maxHeight-height)/2+1)
	}

	block := overlayBorderStyle.Render(strings.Join(lines, "\n"))
	if x > 0 {
		block = indentBlock(block, x)
	}
	return block, y
}
