package leads

import (
	"strings"

	"github.com/google/uuid"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
)

// ExtractLeads parses a markdown pipe table out of the backend's free-text
// response. It never fails: when no table is recognized it returns an empty
// slice, because the backend's output is inherently unreliable and partial
// success beats a hard failure.
//
// Parsing is tolerant by design rather than schema-strict: rows before the
// separator line are ignored (guards against the prompt's example table
// being echoed back), rows with fewer than three columns are dropped, and a
// missing website column is defaulted rather than rejected.
func ExtractLeads(markdown string) []model.Lead {
	var lines []string
	for _, line := range strings.Split(markdown, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	// The separator row gates the whole parse: no "---", no table.
	sep := -1
	for i, line := range lines {
		if strings.Contains(line, "---") {
			sep = i
			break
		}
	}
	if sep == -1 {
		return []model.Lead{}
	}

	leads := []model.Lead{}
	for _, line := range lines[sep+1:] {
		if !strings.Contains(line, "|") {
			// Stray prose or footer, not a row.
			continue
		}

		var cols []string
		for _, col := range strings.Split(line, "|") {
			col = strings.TrimSpace(col)
			if col != "" {
				cols = append(cols, col)
			}
		}
		if len(cols) < 3 {
			continue
		}

		leads = append(leads, model.Lead{
			ID:      uuid.NewString(),
			Name:    column(cols, 0, model.UnknownName),
			Phone:   column(cols, 1, model.NotAvailable),
			Address: column(cols, 2, model.NotAvailable),
			Website: column(cols, 3, model.NotAvailable),
		})
	}

	return leads
}

func column(cols []string, i int, fallback string) string {
	if i >= len(cols) || cols[i] == "" {
		return fallback
	}
	return cols[i]
}
