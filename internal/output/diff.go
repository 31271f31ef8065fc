package output

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// ModifiedItem represents a rewritten file for rendering.
type ModifiedItem struct {
	Name string
	Diff string
}

// UnifiedDiff returns a unified diff of a single file's content before and
// after a rewrite. Returns "" when the contents are equal.
func UnifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}
	return udiff.Unified("a/"+path, "b/"+path, before, after)
}

// RenderDiff renders the file-level effect of a materialization plan:
// files added by swaps, files removed by deletions, and rewritten files
// with their content diffs.
func RenderDiff(added, removed []string, modified []ModifiedItem, styles *Styles) string {
	if len(added) == 0 && len(removed) == 0 && len(modified) == 0 {
		return "No changes detected."
	}

	var sb strings.Builder

	if len(added) > 0 {
		sb.WriteString(styles.Success.Render("Added:"))
		sb.WriteString("\n")
		for _, name := range added {
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(removed) > 0 {
		sb.WriteString(styles.Error.Render("Removed:"))
		sb.WriteString("\n")
		for _, name := range removed {
			sb.WriteString("  - ")
			sb.WriteString(styles.Error.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(modified) > 0 {
		sb.WriteString(styles.Warning.Render("Rewritten:"))
		sb.WriteString("\n")
		for _, mod := range modified {
			sb.WriteString("  ~ ")
			sb.WriteString(styles.Warning.Render(mod.Name))
			sb.WriteString("\n")
			if mod.Diff != "" {
				for _, line := range strings.Split(mod.Diff, "\n") {
					if line != "" {
						sb.WriteString("    ")
						sb.WriteString(line)
						sb.WriteString("\n")
					}
				}
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(len(added), len(removed), len(modified)))
	sb.WriteString("\n")

	return sb.String()
}

// diffSummary returns a summary string of changes.
func diffSummary(added, removed, modified int) string {
	if added == 0 && removed == 0 && modified == 0 {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, pluralize(added, "added"))
	}
	if removed > 0 {
		parts = append(parts, pluralize(removed, "removed"))
	}
	if modified > 0 {
		parts = append(parts, pluralize(modified, "rewritten"))
	}

	return strings.Join(parts, ", ")
}

func pluralize(count int, label string) string {
	return strings.Join([]string{itoa(count), label}, " ")
}

// itoa converts an int to a string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	var negative bool
	if n < 0 {
		negative = true
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		digits = append([]byte{'-'}, digits...)
	}

	return string(digits)
}
