package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ytgrab/api"
	"ytgrab/session"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(10)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func row(label, value string) string {
	return labelStyle.Render(label) + " " + value
}

func renderInfo(info *api.VideoInfo) string {
	lines := []string{
		row("Title", info.Title),
		row("Channel", info.Uploader),
		row("Duration", formatDuration(info.Duration)),
		row("Uploaded", formatUploadDate(info.UploadDate)),
		row("Views", formatViews(info.ViewCount)),
	}
	if info.Description != "" {
		desc := info.Description
		if len(desc) > 200 {
			desc = desc[:197] + "..."
		}
		lines = append(lines, "", faintStyle.Render(desc))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderResult(r session.DownloadResult, savedTo string) string {
	lines := []string{
		successStyle.Render("Download complete"),
		row("Title", r.Title),
		row("Format", fmt.Sprintf("%s (%s)", r.Format, r.Quality)),
	}
	if savedTo != "" {
		lines = append(lines, row("Saved to", savedTo))
	} else if r.DownloadURL != "" {
		lines = append(lines, row("Artifact", r.DownloadURL))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderFailure(err error) string {
	return panelStyle.Render(failureStyle.Render("Download failed") + "\n" + err.Error())
}

func renderTick(s session.Session, maxAttempts int) string {
	switch s.State {
	case session.StateSubmitting:
		return faintStyle.Render("submitting download request...")
	case session.StatePolling:
		return faintStyle.Render(fmt.Sprintf("processing... (check %d/%d)", s.Attempts+1, maxAttempts))
	default:
		return ""
	}
}
