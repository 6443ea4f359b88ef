package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kelsall/chatline/internal"
)

// JSONLExporter writes one message per line, for piping into line-oriented
// tooling.
type JSONLExporter struct{}

// Export exports a document to JSONL format
func (e *JSONLExporter) Export(doc *internal.Document, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range doc.Messages {
		obj := map[string]interface{}{
			"role":    msg.Role,
			"content": msg.Content,
		}
		if msg.Failed {
			obj["failed"] = true
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
