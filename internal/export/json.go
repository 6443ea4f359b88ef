package export

import (
	"encoding/json"
	"io"

	"github.com/kelsall/chatline/internal"
)

// JSONExporter writes the document as pretty-printed JSON. This is the
// canonical interchange format: its output round-trips through import.
type JSONExporter struct{}

// Export exports a document to JSON format
func (e *JSONExporter) Export(doc *internal.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
