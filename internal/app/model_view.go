package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"landctl/internal/landing"
)

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}
	width := m.contentWidth()

	lines := []string{m.headerLine(width)}
	lines = append(lines, m.actionPanelLines(width)...)
	lines = append(lines, dividerStyle.Render(strings.Repeat("─", width)))
	lines = append(lines, strings.Split(m.viewport.View(), "\n")...)
	statusRow := len(lines)
	lines = append(lines, renderStatusLine(width, helpStyle.Render(m.helpLine()), statusStyle.Render(m.status)))

	view := strings.Join(lines, "\n")

	if toast := m.toastLine(width); toast != "" && statusRow > 0 {
		view = spliceOverlay(view, toast, statusRow-1)
	}
	switch {
	case m.confirm.IsOpen():
		overlay, row := m.confirm.View(width, m.height)
		view = spliceOverlay(view, overlay, row)
	case m.queue.IsOpen():
		overlay, row := m.queue.View(width, m.height)
		view = spliceOverlay(view, overlay, row)
	case m.helpOpen:
		overlay, row := m.helpOverlayView(width, m.height)
		view = spliceOverlay(view, overlay, row)
	}
	return view
}

func (m *Model) headerLine(width int) string {
	ref := headerStyle.Render(fmt.Sprintf("%s#%d", m.repo, m.pull))
	chip := ""
	if m.job != nil && m.job.ID > 0 {
		chip = jobStatusStyle(m.job.Status.Pending(), m.job.Status.Terminal()).
			Render(fmt.Sprintf("job #%d: %s", m.job.ID, m.job.Status.Display()))
	}
	left := ref
	if m.pullInfo != nil {
		title := strings.TrimSpace(m.pullInfo.Title)
		if title != "" {
			avail := width - lipgloss.Width(ref) - lipgloss.Width(chip) - 2*statusLinePadding
			if avail > 3 {
				left += " " + titleStyle.Render(truncateToWidth(title, avail))
			}
		}
	}
	return renderStatusLine(width, left, chip)
}

// actionPanelLines renders the landing control and whatever check
// sections the action view marks visible. The panel grows with the
// checks; layout() sizes the description viewport around it.
func (m *Model) actionPanelLines(width int) []string {
	snapshot := m.machine.Snapshot()
	action := m.action

	label := action.Label
	busy := !snapshot.Anonymous &&
		(snapshot.Phase == landing.PhaseUnknown ||
			snapshot.Phase == landing.PhaseIdle ||
			snapshot.Phase == landing.PhaseSubmitting)
	if busy {
		label = m.loader.View() + " " + label
	}
	lines := []string{actionButtonStyle(action.Style, action.Enabled).Render(truncateToWidth(label, max(1, width-2)))}

	if notice := strings.TrimSpace(action.Notice); notice != "" {
		for _, line := range strings.Split(xansi.Hardwrap(notice, width, true), "\n") {
			lines = append(lines, noticeStyle.Render(line))
		}
	}

	if action.ShowBlockers && len(snapshot.Checks.Blockers) > 0 {
		lines = append(lines, blockerStyle.Render("Blocked by:"))
		for _, blocker := range snapshot.Checks.Blockers {
			lines = append(lines, wrapListItem(blocker, width, blockerStyle)...)
		}
	}

	if action.ShowWarnings && len(snapshot.Checks.Warnings) > 0 {
		lines = append(lines, warningStyle.Render("Warnings:"))
		for _, record := range snapshot.Checks.Warnings {
			recordLines := record.Lines()
			for i, text := range recordLines {
				if i == 0 {
					lines = append(lines, wrapListItem(text, width, warningStyle)...)
					continue
				}
				for _, line := range strings.Split(xansi.Hardwrap(text, max(1, width-4), true), "\n") {
					lines = append(lines, "    "+warningDetailStyle.Render(line))
				}
			}
		}
	}

	if action.ShowAcknowledge {
		if action.Acknowledged {
			lines = append(lines, ackDoneStyle.Render("[x] Warnings acknowledged"))
		} else {
			lines = append(lines, ackPendingStyle.Render("[ ] Acknowledge warnings (press a)"))
		}
	}

	return lines
}

func wrapListItem(text string, width int, style lipgloss.Style) []string {
	wrapped := strings.Split(xansi.Hardwrap(text, max(1, width-4), true), "\n")
	out := make([]string, 0, len(wrapped))
	for i, line := range wrapped {
		if i == 0 {
			out = append(out, "  - "+style.Render(line))
			continue
		}
		out = append(out, "    "+style.Render(line))
	}
	return out
}

// spliceOverlay draws overlay starting at the given row, replacing
// whole base rows. Overlay rows beyond the base are dropped.
func spliceOverlay(base, overlay string, row int) string {
	if overlay == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for i, line := range overlayLines {
		idx := row + i
		if idx < 0 || idx >= len(baseLines) {
			break
		}
		baseLines[idx] = line
	}
	return strings.Join(baseLines, "\n")
}
