package news

import "strings"

// SplitParagraphs derives the stored content paragraphs from a multi-line
// edit field: segments are separated by blank lines, trimmed, and empty
// results are discarded. An empty or all-whitespace input yields nil.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// JoinParagraphs is the inverse used to populate the edit textarea.
// SplitParagraphs(JoinParagraphs(ps)) == ps for any ps it produces.
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}
