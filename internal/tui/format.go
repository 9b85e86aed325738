package tui

import (
	"fmt"
	"strings"
)

func formatQuestion(q *Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", q.Title)
	b.WriteString(questionMeta(q))
	b.WriteString("\n\n")
	b.WriteString(q.Content)
	b.WriteString("\n")

	return b.String()
}

func formatMatches(matches []Match) string {
	if len(matches) == 0 {
		return "_no matching questions_\n"
	}

	var b strings.Builder

	for i, m := range matches {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, m.Title)
		fmt.Fprintf(&b, "%s | similarity %.3f\n\n", questionMeta(&m.Question), m.SimilarityScore)
		b.WriteString(excerpt(m.Content, 240))
		b.WriteString("\n\n")
	}

	return b.String()
}

func questionMeta(q *Question) string {
	parts := []string{
		fmt.Sprintf("`#%d`", q.ID),
		"**" + q.Topic + "**",
		"_" + q.Difficulty + "_",
	}

	if q.Company != "" {
		parts = append(parts, q.Company)
	}

	return strings.Join(parts, " · ")
}

// collapses whitespace and truncates to at most n runes
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")

	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n]) + "…"
}
