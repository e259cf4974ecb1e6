package app

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"landctl/internal/types"
)

const (
	queueMaxWidth   = 76
	queueMaxVisible = 12
)

// QueueOverlay lists the landing jobs currently known to the service so the
// viewer can see where their request sits relative to others.
type QueueOverlay struct {
	open    bool
	loading bool
	err     string
	jobs    []*types.LandingJob
	cursor  int
	offset  int
}

func NewQueueOverlay() *QueueOverlay {
	return &QueueOverlay{}
}

func (q *QueueOverlay) IsOpen() bool {
	return q != nil && q.open
}

func (q *QueueOverlay) Open() {
	if q == nil {
		return
	}
	q.open = true
	q.loading = true
	q.err = ""
	q.jobs = nil
	q.cursor = 0
	q.offset = 0
}

func (q *QueueOverlay) Close() {
	if q == nil {
		return
	}
	q.open = false
	q.loading = false
	q.err = ""
	q.jobs = nil
	q.cursor = 0
	q.offset = 0
}

func (q *QueueOverlay) SetJobs(jobs []*types.LandingJob) {
	if q == nil || !q.open {
		return
	}
	q.loading = false
	q.err = ""
	q.jobs = jobs
	q.cursor = clamp(q.cursor, 0, max(0, len(jobs)-1))
	q.offset = 0
	q.scrollToCursor()
}

func (q *QueueOverlay) SetError(message string) {
	if q == nil || !q.open {
		return
	}
	q.loading = false
	q.err = strings.TrimSpace(message)
	q.jobs = nil
	q.cursor = 0
	q.offset = 0
}

func (q *QueueOverlay) Move(delta int) {
	if q == nil || len(q.jobs) == 0 {
		return
	}
	q.cursor = clamp(q.cursor+delta, 0, len(q.jobs)-1)
	q.scrollToCursor()
}

func (q *QueueOverlay) Selected() *types.LandingJob {
	if q == nil || q.cursor < 0 || q.cursor >= len(q.jobs) {
		return nil
	}
	return q.jobs[q.cursor]
}

func (q *QueueOverlay) scrollToCursor() {
	if q.cursor < q.offset {
		q.offset = q.cursor
	}
	if q.cursor >= q.offset+queueMaxVisible {
		q.offset = q.cursor - queueMaxVisible + 1
	}
	if q.offset < 0 {
		q.offset = 0
	}
}

func (q *QueueOverlay) View(maxWidth, maxHeight int) (string, int) {
	if q == nil || !q.open {
		return "", 0
	}
	x, y, width, _ := q.layout(maxWidth, maxHeight)
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)

	title := truncateToWidth(q.headerText(), contentWidth)
	lines := []string{contextMenuHeaderStyle.Render(" " + padToWidth(title, contentWidth) + " ")}
	for _, row := range q.bodyLines(contentWidth) {
		lines = append(lines, row)
	}

	block := overlayBorderStyle.Render(strings.Join(lines, "\n"))
	if x > 0 {
		block = indentBlock(block, x)
	}
	return block, y
}

func (q *QueueOverlay) headerText() string {
	switch {
	case q.loading:
		return "Landing queue"
	case q.err != "":
		return "Landing queue"
	default:
		return fmt.Sprintf("Landing queue (%d)", len(q.jobs))
	}
}

func (q *QueueOverlay) bodyLines(contentWidth int) []string {
	plain := func(text string) string {
		text = truncateToWidth(text, contentWidth)
		return menuDropStyle.Render(" " + padToWidth(text, contentWidth) + " ")
	}
	if q.loading {
		return []string{plain("Loading...")}
	}
	if q.err != "" {
		out := []string{}
		wrapped := xansi.Hardwrap(q.err, contentWidth, true)
		for _, line := range strings.Split(wrapped, "\n") {
			out = append(out, plain(line))
		}
		return out
	}
	if len(q.jobs) == 0 {
		return []string{plain("No landing jobs in flight.")}
	}

	end := min(len(q.jobs), q.offset+queueMaxVisible)
	out := make([]string, 0, end-q.offset+2)
	if q.offset > 0 {
		out = append(out, plain(fmt.Sprintf("... %d earlier", q.offset)))
	}
	for i := q.offset; i < end; i++ {
		row := truncateToWidth(queueRowText(q.jobs[i]), contentWidth)
		row = " " + padToWidth(row, contentWidth) + " "
		if i == q.cursor {
			out = append(out, selectedStyle.Render(row))
		} else {
			out = append(out, menuDropStyle.Render(row))
		}
	}
	if end < len(q.jobs) {
		out = append(out, plain(fmt.Sprintf("... %d more", len(q.jobs)-end)))
	}
	return out
}

func queueRowText(job *types.LandingJob) string {
	if job == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("#%d", job.ID), job.Status.Display()}
	if job.Repository != "" {
		parts = append(parts, job.Repository)
	}
	if job.Requester != "" {
		parts = append(parts, "by "+job.Requester)
	}
	return strings.Join(parts, "  ")
}

func (q *QueueOverlay) layout(maxWidth, maxHeight int) (int, int, int, int) {
	width := q.menuWidth()
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	height := q.menuHeight()
	minRow := 1
	if maxHeight <= 0 {
		minRow = 0
	}
	x := 0
	y := minRow
	if maxWidth > 0 {
		x = (maxWidth - width) / 2
		if x < 0 {
			x = 0
		}
	}
	if maxHeight > 0 {
		y = (maxHeight-height)/2 + minRow
		if y < minRow {
			y = minRow
		}
	}
	return x, y, width, height
}

func (q *QueueOverlay) menuWidth() int {
	width := minListWidth
	contentWidth := xansi.StringWidth(q.headerText())
	for _, job := range q.jobs {
		if w := xansi.StringWidth(queueRowText(job)); w > contentWidth {
			contentWidth = w
		}
	}
	if w := xansi.StringWidth(q.err); w > contentWidth {
		contentWidth = w
	}
	if contentWidth+4 > width {
		width = contentWidth + 4
	}
	if width > queueMaxWidth {
		width = queueMaxWidth
	}
	return width
}

func (q *QueueOverlay) menuHeight() int {
	rows := 1
	switch {
	case q.loading, q.err != "", len(q.jobs) == 0:
		rows = 1
	default:
		rows = min(len(q.jobs), queueMaxVisible)
		if q.offset > 0 {
			rows++
		}
		if q.offset+queueMaxVisible < len(q.jobs) {
			rows++
		}
	}
	return rows + 1 + 2
}
