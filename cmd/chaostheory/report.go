// cmd/chaostheory/report.go
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opd-ai/go-chaostheory/pkg/level"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// renderReport formats the outcome of a headless run
func renderReport(r simulation) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Chaos Theory: " + string(r.Level)))
	b.WriteString("\n")
	b.WriteString(row("seed", fmt.Sprint(r.Seed)) + "\n")
	b.WriteString(row("links", fmt.Sprint(r.Links)) + "\n")
	b.WriteString(row("attempts", fmt.Sprint(len(r.Attempts))) + "\n\n")

	for _, at := range r.Attempts {
		status := lossStyle.Render("missed")
		if at.Won {
			status = winStyle.Render(render.WinBanner(at.winStatus()))
		}
		line := fmt.Sprintf("#%-3d %5d ticks  touches [%s]  ", at.Number, at.Ticks, joinInts(at.Touches))
		b.WriteString(dimStyle.Render(line) + status + "\n")
	}

	result := lossStyle.Render("not won")
	if r.Won() {
		result = winStyle.Render("won")
	}
	b.WriteString("\n" + row("result", result))
	return boxStyle.Render(b.String())
}

// renderLevels formats a level catalog as a listing
func renderLevels(c *level.Catalog) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d levels", c.Len())))
	b.WriteString("\n")
	for _, d := range c.Definitions() {
		next := string(d.Next)
		if next == "" {
			next = "-"
		}
		b.WriteString(row(string(d.ID), fmt.Sprintf("links %d  targets %d  red zones %d  next %s",
			len(d.Links), len(d.Targets), len(d.RedZones), next)))
		b.WriteString("\n")
		if d.Text != "" {
			b.WriteString(dimStyle.Render("            " + d.Text))
			b.WriteString("\n")
		}
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
