package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/kelsall/chatline/internal"
)

// MarkdownExporter exports documents in Markdown format, for reading rather
// than re-importing.
type MarkdownExporter struct{}

// Export exports a document to Markdown format
func (e *MarkdownExporter) Export(doc *internal.Document, w io.Writer) error {
	title := doc.Title
	if title == "" {
		title = doc.ID
	}
	_, _ = fmt.Fprintf(w, "# %s\n\n", title)

	if doc.Model != "" {
		_, _ = fmt.Fprintf(w, "**Model:** %s  \n", doc.Model)
	}
	if doc.Timestamp != "" {
		_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", doc.Timestamp)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(doc.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range doc.Messages {
		marker := ""
		if msg.Failed {
			marker = " (failed)"
		}

		content := escapeMarkdown(msg.Content)

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.Role, marker, content)

		if i < len(doc.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
