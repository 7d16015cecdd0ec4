package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

const (
	titleWidth   = 32
	statusWidth  = 13
	createdWidth = 17
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	columnStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	statusStyles = map[service.Status]lipgloss.Style{
		service.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		service.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		service.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("  " + dimStyle.Render("signed in as "+m.username))
	b.WriteString("\n\n")

	snap := m.list.Snapshot()
	b.WriteString(renderFilter(snap.Query.Status))
	b.WriteString("\n\n")
	b.WriteString(m.renderTable(snap))
	b.WriteString("\n")
	b.WriteString(m.renderPager(snap))
	b.WriteString("\n")

	switch {
	case m.del.Notice() != "":
		b.WriteString("\n" + modalStyle.Render(errorStyle.Render(m.del.Notice())+"\n"+dimStyle.Render("enter to dismiss")))
		b.WriteString("\n")
	case m.edit.IsOpen():
		b.WriteString("\n" + m.renderForm())
		b.WriteString("\n")
	case m.del.IsOpen():
		b.WriteString("\n" + m.renderDeleteConfirm())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(m.renderHelp()))
	return b.String()
}

func renderFilter(active service.Status) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		name := string(f)
		if f == "" {
			name = "all"
		}
		if f == active {
			parts[i] = "[" + name + "]"
		} else {
			parts[i] = dimStyle.Render(name)
		}
	}
	return "Filter: " + strings.Join(parts, " ")
}

func sortLabel(name string, field service.SortField, q service.Query) string {
	if q.Sort != field {
		return name
	}
	if q.Order == service.Asc {
		return name + " ↑"
	}
	return name + " ↓"
}

func (m Model) renderTable(snap tasklist.Snapshot) string {
	var b strings.Builder
	q := snap.Query

	b.WriteString("  ")
	b.WriteString(columnStyle.Render(pad(sortLabel("Title", service.SortTitle, q), titleWidth)))
	b.WriteString(" ")
	b.WriteString(columnStyle.Render(pad(sortLabel("Status", service.SortStatus, q), statusWidth)))
	b.WriteString(" ")
	b.WriteString(columnStyle.Render(pad(sortLabel("Created", service.SortCreatedAt, q), createdWidth)))
	b.WriteString("\n")

	if len(snap.Items) == 0 {
		b.WriteString("  " + dimStyle.Render("No tasks found") + "\n")
		return b.String()
	}

	for i, t := range snap.Items {
		row := pad(t.Title, titleWidth) + " " +
			statusStyle(t.Status).Render(pad(string(t.Status), statusWidth)) + " " +
			pad(formatCreated(t.CreatedAt, m.loc), createdWidth)
		if i == m.cursor && !m.edit.IsOpen() {
			b.WriteString("> " + selectedStyle.Render(row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPager(snap tasklist.Snapshot) string {
	prev := "‹ prev (" + m.keys.PrevPage + ")"
	if !canPrev(snap) {
		prev = dimStyle.Render(prev)
	}
	next := "next (" + m.keys.NextPage + ") ›"
	if !canNext(snap) {
		next = dimStyle.Render(next)
	}

	info := fmt.Sprintf("Page %d of %d • showing %d of %d", snap.Query.Page, snap.TotalPages, len(snap.Items), snap.Total)
	line := prev + "  " + info + "  " + next
	if snap.Loading {
		line += "  " + m.spinner.View() + " loading"
	}
	return line
}

func (m Model) renderForm() string {
	var b strings.Builder

	heading := "New Task"
	if _, ok := m.edit.Draft().EditingID(); ok {
		heading = "Edit Task"
	}
	b.WriteString(headerStyle.Render(heading) + "\n\n")

	b.WriteString(fieldLabel("Title", m.form.focus == fieldTitle) + "\n")
	b.WriteString(m.form.title.View() + "\n\n")
	b.WriteString(fieldLabel("Description", m.form.focus == fieldDescription) + "\n")
	b.WriteString(m.form.description.View() + "\n\n")
	b.WriteString(fieldLabel("Status", m.form.focus == fieldStatus) + "\n")
	for _, s := range service.Statuses {
		if s == m.form.status {
			b.WriteString(statusStyle(s).Render("(•) "+string(s)) + "  ")
		} else {
			b.WriteString(dimStyle.Render("( ) "+string(s)) + "  ")
		}
	}
	b.WriteString("\n")

	if msg := m.edit.ErrorMessage(); msg != "" {
		b.WriteString("\n" + errorStyle.Render(msg) + "\n")
	}
	if m.edit.IsSaving() {
		b.WriteString("\n" + m.spinner.View() + " saving\n")
	}
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%s save • %s next field • %s cancel",
		strings.Join(m.keys.Save, "/"), m.keys.NextField, m.keys.Cancel)))

	return modalStyle.Render(b.String())
}

func (m Model) renderDeleteConfirm() string {
	task, _ := m.del.Candidate()
	body := fmt.Sprintf("Delete %q?\n\n", task.Title)
	if m.del.IsDeleting() {
		body += m.spinner.View() + " deleting"
	} else {
		body += dimStyle.Render(fmt.Sprintf("%s delete • %s cancel", m.keys.Confirm, m.keys.Cancel))
	}
	return modalStyle.Render(body)
}

func (m Model) renderHelp() string {
	k := m.keys
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s filter • %s/%s/%s sort • %s/%s page • %s refresh • %s logout • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Filter, k.SortTitle, k.SortStatus, k.SortCreated,
		k.PrevPage, k.NextPage, k.Refresh, k.Logout, k.Quit)
}

func fieldLabel(name string, focused bool) string {
	if focused {
		return "> " + headerStyle.Render(name)
	}
	return "  " + name
}

func statusStyle(s service.Status) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// formatCreated shows an ISO timestamp as local date and time.
func formatCreated(s string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
