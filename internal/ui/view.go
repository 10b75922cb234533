// ABOUTME: TUI rendering
// ABOUTME: Character strip, script editor, expressivity and player panel
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/travesia/voicebox/internal/player"
	"github.com/travesia/voicebox/internal/roster"
	"github.com/travesia/voicebox/internal/session"
	"github.com/travesia/voicebox/internal/version"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	faintStyle = lipgloss.NewStyle().Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View renders the TUI
func (m Model) View() string {
	if m.state.Closed {
		return "Cerrando voicebox...\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", version.Product, version.Version)))
	b.WriteString("\n\n")

	b.WriteString(m.renderCharacters())
	b.WriteString("\n")
	b.WriteString(m.renderCharacterInfo())
	b.WriteString("\n\n")

	b.WriteString(m.renderEditor())
	b.WriteString("\n")
	b.WriteString(m.renderExpressivity())
	b.WriteString("\n\n")

	b.WriteString(m.renderPlayer())
	b.WriteString("\n")

	if m.state.Err != "" {
		b.WriteString(errorStyle.Render("Error: " + m.state.Err))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderCharacters renders the selectable character strip
func (m Model) renderCharacters() string {
	chars := m.roster.All()
	cells := make([]string, 0, len(chars))
	for _, c := range chars {
		style := lipgloss.NewStyle().Padding(0, 1)
		if c.ID == m.state.Character.ID {
			style = style.Bold(true).
				Foreground(lipgloss.Color("231")).
				Background(characterColor(c))
		} else {
			style = style.Foreground(characterColor(c))
		}
		cells = append(cells, style.Render(c.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderCharacterInfo() string {
	c := m.state.Character
	name := lipgloss.NewStyle().Bold(true).Foreground(characterColor(c)).Render(c.Name)

	var b strings.Builder
	b.WriteString(name)
	if c.Role != "" {
		b.WriteString(valueStyle.Render(" · " + c.Role))
	}
	b.WriteString(faintStyle.Render("  voz: " + c.Voice))
	if c.Description != "" {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(truncate(c.Description, 96)))
	}
	return b.String()
}

func (m Model) renderEditor() string {
	header := headerStyle.Render("Guion de " + m.state.Character.Name)
	style := editorStyle
	if m.editing {
		style = style.BorderForeground(characterColor(m.state.Character))
	}
	return header + "\n" + style.Render(m.editor.View())
}

func (m Model) renderExpressivity() string {
	steps := int(session.MaxTemperature / session.TemperatureStep)
	value := int(m.state.Temperature/session.TemperatureStep + 0.5)
	return fmt.Sprintf("%s %s %s %s",
		faintStyle.Render("Estabilidad"),
		renderBar(value, steps, steps),
		faintStyle.Render("Expresividad"),
		valueStyle.Render(fmt.Sprintf("(%.1f)", m.state.Temperature)))
}

func (m Model) renderPlayer() string {
	switch {
	case m.state.Loading:
		return headerStyle.Render("Generando voz de " + m.state.Character.Name + "...")
	case !m.state.HasClip():
		return faintStyle.Render("Esperando generación...")
	}

	c := m.state.Clip.Clip()
	played, total := m.player.Progress()
	icon := "▶"
	switch m.player.State() {
	case player.StatePlaying:
		icon = "⏸"
	case player.StatePaused:
		icon = "▶"
	}

	elapsed := time.Duration(0)
	if c.Format.SampleRate > 0 {
		elapsed = time.Duration(played) * time.Second / time.Duration(c.Format.SampleRate)
	}

	volume := fmt.Sprintf("vol %d%%", m.volume)
	if m.muted {
		volume = "silenciado"
	}

	return fmt.Sprintf("%s %s %s / %s  %s",
		icon,
		renderBar(played, max(total, 1), 30),
		valueStyle.Render(formatDuration(elapsed)),
		valueStyle.Render(formatDuration(c.Duration())),
		faintStyle.Render(volume))
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	if m.editing {
		return faintStyle.Render("esc/tab: terminar edición  ctrl+c: salir")
	}
	return faintStyle.Render("←/→:personaje  ↑/↓:expresividad  g:generar  espacio:play/pausa  r:repetir  s:guardar  e:editar  +/-:volumen  m:silenciar  q:salir")
}

func characterColor(c roster.Character) lipgloss.Color {
	if c.Color == "" {
		return lipgloss.Color("99")
	}
	return lipgloss.Color(c.Color)
}

// Utility functions
func renderBar(value, max, width int) string {
	if max <= 0 {
		max = 1
	}
	value = min(value, max)
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
