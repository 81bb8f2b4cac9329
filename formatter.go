package gemdocs

import "strings"

// ResultSeparator divides formatted documents in search output.
const ResultSeparator = "\n\n---\n\n"

// FormatDocuments formats ranked documents as "# [title](url)" headers
// followed by their content, separated by ResultSeparator.
// Uses the URL as the title when the title is empty.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.URL
		}
		parts = append(parts, "# ["+title+"]("+doc.URL+")\n"+doc.Content)
	}

	return strings.Join(parts, ResultSeparator)
}

// FormatTitles renders titles as a bulleted list under a heading.
func FormatTitles(heading string, titles []string) string {
	var sb strings.Builder
	sb.WriteString(heading)
	for _, title := range titles {
		sb.WriteString("\n- ")
		sb.WriteString(title)
	}
	return sb.String()
}
