package report

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// WriteMarkdown renders the per-channel scores as a Markdown status table.
// Channels appear in sorted order so repeated runs produce identical output
// up to the timestamp. A channel without a threshold entry uses 0.
func WriteMarkdown(path, title string, scores, thresholds map[string]float64, now time.Time) error {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Date:** %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("## Channel Status\n\n")
	b.WriteString("| Channel | Distance | Threshold | Status |\n")
	b.WriteString("|---------|----------|-----------|--------|\n")

	anyAnomaly := false
	for _, name := range names {
		distance := scores[name]
		threshold := thresholds[name]
		status := "OK"
		if distance > threshold {
			status = "**ANOMALY**"
			anyAnomaly = true
		}
		fmt.Fprintf(&b, "| `%s` | %.6f | %.6f | %s |\n", name, distance, threshold, status)
	}

	b.WriteString("\n")
	if anyAnomaly {
		b.WriteString("> [!WARNING]\n> Anomalies detected! Please check the affected channels.\n")
	} else {
		b.WriteString("> [!NOTE]\n> All systems nominal.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
