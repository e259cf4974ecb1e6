package app

import (
	"github.com/charmbracelet/lipgloss"

	"landctl/internal/landing"
)

var (
	headerStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	titleStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dividerStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	selectedStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	menuDropStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	contextMenuHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)

	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	overlayBorderStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69"))

	actionNeutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237")).Bold(true).Padding(0, 1)
	actionSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true).Padding(0, 1)
	actionWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true).Padding(0, 1)
	actionDangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true).Padding(0, 1)

	blockerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	warningStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	warningDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	ackDoneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	ackPendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	noticeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true)

	jobPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	jobLandedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	jobStoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)

func actionButtonStyle(style landing.ActionStyle, enabled bool) lipgloss.Style {
	base := actionNeutralStyle
	switch style {
	case landing.StyleSuccess:
		base = actionSuccessStyle
	case landing.StyleWarning:
		base = actionWarningStyle
	case landing.StyleDanger:
		base = actionDangerStyle
	}
	if !enabled {
		return base.Faint(true)
	}
	return base
}

func jobStatusStyle(pending, landed bool) lipgloss.Style {
	switch {
	case landed:
		return jobLandedStyle
	case pending:
		return jobPendingStyle
	default:
		return jobStoppedStyle
	}
}
