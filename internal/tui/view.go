package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateCalendar:
		content = docStyle.Render(m.calendarModel.View())
	case StateAddHabit:
		content = m.form.View()
	case StateConfirmArchive:
		content = m.viewConfirm(warningStyle.Render("Archive this habit?"))
	case StateConfirmDelete:
		content = m.viewConfirm(dangerStyle.Render("Delete this habit and its entire log history?"))
	}

	var status string
	if m.statusError != "" {
		status = errorStyle.Render(m.statusError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Calendar"} {
		if m.state == SessionState(i) || (m.state >= StateAddHabit && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirm(prompt string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			prompt,
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
