// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/service"
)

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {STATUS:<11}  {TITLE}  [{ID}]\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	title := normalizeTitle(task.Title)
	fmt.Fprintf(w, "%4d  %-11s  %s  [%s]\n", num, task.Status, title, task.ID)
}

// FormatPageFooter formats the pagination summary under a listing.
func FormatPageFooter(w io.Writer, page, totalPages, shown, total int) {
	fmt.Fprintf(w, "page %d of %d, showing %d of %d\n", page, totalPages, shown, total)
}

// FormatTaskDetail formats every field of a task, one per line.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", task.Status)
	fmt.Fprintf(w, "created:     %s\n", task.CreatedAt)
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(w, "description: %s\n", normalizeTitle(desc))
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
