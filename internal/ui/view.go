package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// resize recomputes pane sizes after a terminal resize.
func (m *Model) resize() {
	l := computeLayout(m.width, m.height)
	if !m.ready {
		m.resultView = viewport.New(l.innerWidth(l.leftWidth), l.resultHeight)
		m.detailView = viewport.New(l.innerWidth(l.rightWidth), l.detailHeight)
		m.resultView.SetContent(m.resultText)
		m.detailView.SetContent(m.detailText)
	} else {
		m.resultView.Width = l.innerWidth(l.leftWidth)
		m.resultView.Height = l.resultHeight
		m.detailView.Width = l.innerWidth(l.rightWidth)
		m.detailView.Height = l.detailHeight
	}
	m.input.Width = max(l.innerWidth(l.leftWidth)-lipgloss.Width(m.input.Prompt)-1, 1)
	m.help.Width = m.width
}

// renderMain renders header, the two columns and the footer.
func (m Model) renderMain() string {
	l := computeLayout(m.width, m.height)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane("Consulta de Paquetes", m.input.View(), l.leftWidth, 1, m.focus == focusInput),
		m.renderPane("Resultado", m.resultBody(), l.leftWidth, l.resultHeight, false),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane("Historial de Consultas", m.renderHistory(l.innerWidth(l.rightWidth), l.historyHeight), l.rightWidth, l.historyHeight, m.focus == focusHistory),
		m.renderPane("Detalle", m.detailBody(), l.rightWidth, l.detailHeight, false),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	status := styles.MutedText.Render("listo")
	if m.loading {
		status = m.spinner.View() + " " + styles.MutedText.Render("consultando...")
	}
	parts := []string{
		styles.Title.Render("Sistema de Rastreo de Paquetes"),
		status,
	}
	if m.apiURL != "" {
		parts = append(parts, styles.MutedText.Render(truncateMiddle(m.apiURL, 40)))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderPane draws a titled, bordered box. width includes the border.
func (m Model) renderPane(title, body string, width, height int, focused bool) string {
	styles := m.theme.Styles()
	box := styles.Pane
	titleStyle := styles.MutedText.Bold(true)
	if focused {
		box = styles.PaneFocus
		titleStyle = styles.AccentText.Bold(true)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body)
	return box.Width(max(width-2, 1)).Height(height + 1).Render(content)
}

func (m Model) resultBody() string {
	if m.resultText == "" {
		return m.theme.Styles().MutedText.Render("Sin resultados")
	}
	return m.resultView.View()
}

func (m Model) detailBody() string {
	if m.detailText == "" {
		return m.theme.Styles().MutedText.Render("Seleccione una consulta y pulse enter")
	}
	return m.detailView.View()
}

// renderHistory renders the visible window of history lines around the selection.
func (m Model) renderHistory(width, height int) string {
	styles := m.theme.Styles()
	if len(m.history) == 0 {
		return styles.MutedText.Render("Sin consultas")
	}

	start, end := visibleWindow(len(m.history), m.selected, height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := truncate(m.history[i].String(), width)
		if i == m.selected && m.focus == focusHistory {
			line = styles.Selected.Width(width).Render(line)
		} else if i == m.selected {
			line = styles.AccentText.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderError renders the error alert. The operator must dismiss it.
func (m Model) renderError() string {
	styles := m.theme.Styles()

	width := min(60, max(m.width-4, 20))
	title := "Error"
	if n := len(m.errors); n > 1 {
		title = fmt.Sprintf("Error (1 de %d)", n)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.DangerText.Render(title),
		"",
		styles.Text.Width(width-6).Render(m.errors[0]),
		"",
		styles.MutedText.Render("[enter] Aceptar"),
	)
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 2).
		Width(width).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Atajos de teclado"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(10)
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("Tema: %s", m.theme.Name)))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
