package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"landctl/internal/client"
	"landctl/internal/landing"
	"landctl/internal/logging"
	"landctl/internal/types"
)

const (
	tickInterval      = 100 * time.Millisecond
	requestTimeout    = 30 * time.Second
	toastDuration     = 4 * time.Second
	minViewportWidth  = 20
	minContentHeight  = 6
	statusLinePadding = 1
)

// Model is the landing view for a single pull request. All landing
// semantics live in the state machine; the model translates terminal
// input into machine events and machine effects into commands.
type Model struct {
	api     LandingAPI
	history HistorySink
	logger  logging.Logger

	repo    string
	pull    int
	headSHA string

	machine  *landing.Machine
	action   landing.ActionView
	pullInfo *types.PullRequest
	job      *types.LandingJob

	viewport viewport.Model
	loader   spinner.Model
	confirm  *ConfirmController
	queue    *QueueOverlay
	helpOpen bool

	width  int
	height int
	status string

	toastText  string
	toastLevel toastLevel
	toastUntil time.Time

	requestScopes map[string]requestScope
}

type Options struct {
	Repo    string
	Pull    int
	HeadSHA string
	History HistorySink
	Logger  logging.Logger
	// DarkBackground selects the markdown palette; most terminals are
	// dark, so that is the default at the call sites.
	DarkBackground bool
}

func NewModel(api LandingAPI, opts Options) Model {
	vp := viewport.New(minViewportWidth, minContentHeight-1)
	vp.SetContent("Loading pull request...")

	loader := spinner.New()
	loader.Spinner = spinner.Line
	loader.Style = lipgloss.NewStyle()

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	setMarkdownBackgroundDark(opts.DarkBackground)

	machine := landing.NewMachine(api == nil || api.Anonymous())

	return Model{
		api:      api,
		history:  opts.History,
		logger:   logger,
		repo:     opts.Repo,
		pull:     opts.Pull,
		headSHA:  opts.HeadSHA,
		machine:  machine,
		action:   landing.BuildActionView(machine.Snapshot()),
		viewport: vp,
		loader:   loader,
		confirm:  NewConfirmController(),
		queue:    NewQueueOverlay(),
	}
}

// Run opens the landing view and blocks until the viewer quits.
func Run(c *client.Client, opts Options) error {
	model := NewModel(c, opts)
	p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	snapshot := m.machine.Snapshot()
	m.logger.Info("landing view opened",
		logging.F("repo", m.repo),
		logging.F("pull", m.pull),
		logging.F("anonymous", snapshot.Anonymous))
	if snapshot.Anonymous {
		return tickCmd()
	}
	transition := m.machine.Apply(landing.Event{Type: landing.EventViewOpened})
	cmds := m.effectCmds(transition.Effects)
	m.refreshAction()
	cmds = append(cmds,
		fetchPullInfoCmd(m.replaceRequestScope(requestScopePullInfo), m.api, m.repo, m.pull),
		tickCmd())
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tickMsg:
		m.loader, _ = m.loader.Update(spinner.TickMsg{Time: time.Time(msg), ID: m.loader.ID()})
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case jobStatusMsg:
		return m.handleJobStatus(msg)
	case checksMsg:
		return m.handleChecks(msg)
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case pullInfoMsg:
		return m.handlePullInfo(msg)
	case queueMsg:
		return m.handleQueue(msg)
	case cancelResultMsg:
		return m.handleCancelResult(msg)
	case historySavedMsg:
		if msg.err != nil {
			m.logger.Warn("history append failed", logging.F("error", msg.err.Error()))
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		if handled {
			return m.resolveConfirm(choice)
		}
		return m, nil
	}
	if m.queue.IsOpen() {
		switch msg.String() {
		case "ctrl+c":
			m.cancelAllRequestScopes()
			return m, tea.Quit
		case "esc", "q", "v":
			m.queue.Close()
			m.cancelRequestScope(requestScopeQueue)
			return m, nil
		case "up", "k":
			m.queue.Move(-1)
			return m, nil
		case "down", "j":
			m.queue.Move(1)
			return m, nil
		case "r":
			m.queue.Open()
			return m, fetchQueueCmd(m.replaceRequestScope(requestScopeQueue), m.api)
		}
		return m, nil
	}
	if m.helpOpen {
		switch msg.String() {
		case "ctrl+c":
			m.cancelAllRequestScopes()
			return m, tea.Quit
		case "esc", "q", "?":
			m.helpOpen = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.cancelAllRequestScopes()
		return m, tea.Quit
	case "enter":
		transition := m.machine.Apply(landing.Event{Type: landing.EventSubmitPressed})
		return m, m.runTransition(transition, true)
	case "a":
		transition := m.machine.Apply(landing.Event{Type: landing.EventAckToggled})
		return m, m.runTransition(transition, true)
	case "r":
		return m, m.reload()
	case "c":
		return m.promptCancel()
	case "v":
		if m.machine.Snapshot().Anonymous {
			m.setValidationStatus("log in to see the landing queue")
			return m, nil
		}
		m.queue.Open()
		return m, fetchQueueCmd(m.replaceRequestScope(requestScopeQueue), m.api)
	case "y":
		url := m.pullURL()
		if url == "" {
			m.setValidationStatus("no pull request URL yet")
			return m, nil
		}
		m.copyWithStatus(url, "pull request URL copied")
		return m, nil
	case "?":
		m.helpOpen = true
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleMouse(msg, m.width, m.height)
		if handled {
			return m.resolveConfirm(choice)
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.confirm.Close()
		}
		return m, nil
	}
	if m.queue.IsOpen() {
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.queue.Move(-1)
			case tea.MouseButtonWheelDown:
				m.queue.Move(1)
			}
		}
		return m, nil
	}
	if m.helpOpen {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleJobStatus(msg jobStatusMsg) (tea.Model, tea.Cmd) {
	m.cancelRequestScope(requestScopeStatus)
	if msg.err != nil {
		if isCanceledRequestError(msg.err) {
			return m, nil
		}
		m.logger.Warn("status fetch failed",
			logging.F("repo", m.repo),
			logging.F("pull", m.pull),
			logging.F("error", msg.err.Error()))
		transition := m.machine.Apply(landing.Event{
			Type:       landing.EventStatusFailed,
			Generation: msg.generation,
			Failure:    msg.err.Error(),
		})
		return m, m.runTransition(transition, false)
	}

	status := types.StatusNone
	if msg.job != nil {
		status = msg.job.Status
	}
	transition := m.machine.Apply(landing.Event{
		Type:       landing.EventStatusResolved,
		Generation: msg.generation,
		Status:     status,
	})
	if !transition.Ignored {
		if msg.job != nil && msg.job.ID > 0 {
			m.job = msg.job
		} else {
			m.job = nil
		}
	}
	return m, m.runTransition(transition, false)
}

func (m *Model) handleChecks(msg checksMsg) (tea.Model, tea.Cmd) {
	m.cancelRequestScope(requestScopeChecks)
	if msg.err != nil {
		if isCanceledRequestError(msg.err) {
			return m, nil
		}
		m.logger.Warn("checks fetch failed",
			logging.F("repo", m.repo),
			logging.F("pull", m.pull),
			logging.F("error", msg.err.Error()))
		transition := m.machine.Apply(landing.Event{
			Type:       landing.EventChecksFailed,
			Generation: msg.generation,
			Failure:    msg.err.Error(),
		})
		return m, m.runTransition(transition, false)
	}

	checks := types.ChecksResult{}
	if msg.checks != nil {
		checks = *msg.checks
	}
	transition := m.machine.Apply(landing.Event{
		Type:       landing.EventChecksResolved,
		Generation: msg.generation,
		Checks:     checks,
	})
	return m, m.runTransition(transition, false)
}

func (m *Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.cancelRequestScope(requestScopeSubmit)
	if msg.err != nil && isCanceledRequestError(msg.err) {
		return m, nil
	}

	receipt := types.SubmitReceipt{Outcome: types.SubmitUnknown}
	if msg.err != nil {
		receipt.Reason = msg.err.Error()
	} else if msg.receipt != nil {
		receipt = *msg.receipt
	}

	m.logger.Info("landing submit resolved",
		logging.F("repo", m.repo),
		logging.F("pull", m.pull),
		logging.F("outcome", string(receipt.Outcome)),
		logging.F("job_id", receipt.JobID))
	historyCmd := appendHistoryCmd(m.history, historyRecordForReceipt(m.repo, m.pull, m.resolvedHeadSHA(), receipt))

	transition := m.machine.Apply(landing.Event{
		Type:       landing.EventSubmitResolved,
		Generation: msg.generation,
		Receipt:    receipt,
	})
	if transition.Ignored {
		return m, historyCmd
	}
	switch receipt.Outcome {
	case types.SubmitCreated:
		m.showInfoToast("Landing request submitted")
	default:
		m.showErrorToast("Landing request failed")
	}
	return m, tea.Batch(historyCmd, m.runTransition(transition, false))
}

func (m *Model) handlePullInfo(msg pullInfoMsg) (tea.Model, tea.Cmd) {
	m.cancelRequestScope(requestScopePullInfo)
	if msg.err != nil {
		if !isCanceledRequestError(msg.err) {
			m.setBackgroundError("pull request: " + msg.err.Error())
		}
		return m, nil
	}
	m.pullInfo = msg.pull
	m.layout()
	return m, nil
}

func (m *Model) handleQueue(msg queueMsg) (tea.Model, tea.Cmd) {
	m.cancelRequestScope(requestScopeQueue)
	if msg.err != nil {
		if !isCanceledRequestError(msg.err) {
			m.queue.SetError(msg.err.Error())
		}
		return m, nil
	}
	m.queue.SetJobs(msg.jobs)
	return m, nil
}

func (m *Model) handleCancelResult(msg cancelResultMsg) (tea.Model, tea.Cmd) {
	m.cancelRequestScope(requestScopeCancel)
	if msg.err != nil {
		if !isCanceledRequestError(msg.err) {
			m.setStatusError("cancel failed: " + msg.err.Error())
		}
		return m, nil
	}
	m.logger.Info("landing job cancelled", logging.F("job_id", msg.jobID))
	m.showInfoToast(fmt.Sprintf("Landing job #%d cancelled", msg.jobID))
	m.job = nil
	return m, m.reload()
}

// reload starts a fresh generation: one status fetch, then checks if
// the status allows them, plus a pull request refresh for the head
// revision. In-flight fetches from the previous generation are cut.
func (m *Model) reload() tea.Cmd {
	m.cancelFetchScopes()
	transition := m.machine.Apply(landing.Event{Type: landing.EventReloadRequested})
	if transition.Ignored {
		if transition.Reason != "" {
			m.setValidationStatus(transition.Reason)
		}
		return nil
	}
	m.job = nil
	cmds := m.effectCmds(transition.Effects)
	cmds = append(cmds, fetchPullInfoCmd(m.replaceRequestScope(requestScopePullInfo), m.api, m.repo, m.pull))
	m.refreshAction()
	m.setBackgroundStatus("reloading")
	return tea.Batch(cmds...)
}

func (m *Model) promptCancel() (tea.Model, tea.Cmd) {
	job := m.job
	if job == nil || job.ID <= 0 || !job.Status.Cancellable() {
		m.setValidationStatus("no landing job to cancel")
		return m, nil
	}
	m.confirm.Open(
		"Cancel landing job?",
		fmt.Sprintf("Stop landing job #%d for %s#%d. The pull request stays open.", job.ID, m.repo, m.pull),
		"Cancel job",
		"Keep job",
	)
	return m, nil
}

func (m *Model) resolveConfirm(choice confirmChoice) (tea.Model, tea.Cmd) {
	if choice == confirmChoiceNone {
		return m, nil
	}
	job := m.job
	m.confirm.Close()
	if choice != confirmChoiceConfirm {
		return m, nil
	}
	if job == nil || job.ID <= 0 {
		m.setValidationStatus("no landing job to cancel")
		return m, nil
	}
	m.setBackgroundStatus(fmt.Sprintf("cancelling job #%d", job.ID))
	return m, cancelJobCmd(m.replaceRequestScope(requestScopeCancel), m.api, job.ID)
}

// runTransition executes a transition's effects and refreshes the
// action view. Ignored transitions from user input surface their
// reason; ignored async results are dropped quietly.
func (m *Model) runTransition(transition landing.Transition, surfaceIgnored bool) tea.Cmd {
	if transition.Ignored {
		if surfaceIgnored && transition.Reason != "" {
			m.setValidationStatus(transition.Reason)
		}
		return nil
	}
	cmds := m.effectCmds(transition.Effects)
	m.refreshAction()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) effectCmds(effects []landing.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch effect {
		case landing.EffectFetchStatus:
			ctx := m.replaceRequestScope(requestScopeStatus)
			cmds = append(cmds, fetchJobStatusCmd(ctx, m.api, m.repo, m.pull, m.machine.Generation()))
		case landing.EffectFetchChecks:
			ctx := m.replaceRequestScope(requestScopeChecks)
			cmds = append(cmds, fetchChecksCmd(ctx, m.api, m.repo, m.pull, m.machine.Generation()))
		case landing.EffectSubmit:
			ctx := m.replaceRequestScope(requestScopeSubmit)
			cmds = append(cmds, submitLandingCmd(ctx, m.api, m.repo, m.pull, m.resolvedHeadSHA(), m.machine.Generation()))
		case landing.EffectRefresh:
			// The accepted submission is now a job; show it through a
			// full reload so the job id and queue position come back.
			transition := m.machine.Apply(landing.Event{Type: landing.EventReloadRequested})
			cmds = append(cmds, m.effectCmds(transition.Effects)...)
		}
	}
	return cmds
}

func (m *Model) refreshAction() {
	m.action = landing.BuildActionView(m.machine.Snapshot())
	m.layout()
}

func (m *Model) resolvedHeadSHA() string {
	if m.headSHA != "" {
		return m.headSHA
	}
	if m.pullInfo != nil {
		return m.pullInfo.HeadSHA
	}
	return ""
}

func (m *Model) pullURL() string {
	if m.pullInfo != nil {
		return strings.TrimSpace(m.pullInfo.HTMLURL)
	}
	return ""
}

func (m *Model) contentWidth() int {
	return max(minViewportWidth, m.width)
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	panelHeight := len(m.actionPanelLines(m.contentWidth()))
	vpHeight := m.height - 1 - panelHeight - 1 - 1
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = vpHeight
	m.renderBody()
}

func (m *Model) renderBody() {
	width := max(1, m.viewport.Width)
	var body string
	switch {
	case m.machine.Snapshot().Anonymous:
		body = "Log in to request landing and see pull request details."
	case m.pullInfo == nil:
		body = "Loading pull request..."
	default:
		body = strings.TrimSpace(m.pullInfo.Body)
		if body == "" {
			body = "No description."
		}
	}
	m.viewport.SetContent(renderMarkdown(body, width))
}

func renderStatusLine(width int, help, status string) string {
	if width <= 0 {
		return help + " " + status
	}
	helpWidth := lipgloss.Width(help)
	statusWidth := lipgloss.Width(status)
	padding := width - helpWidth - statusWidth
	if padding < statusLinePadding {
		padding = statusLinePadding
	}
	return help + strings.Repeat(" ", padding) + status
}
