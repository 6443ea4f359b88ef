package export

import (
	"bytes"
	"testing"

	"github.com/kelsall/chatline/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	tests := []struct {
		name string
		doc  *internal.Document
	}{
		{
			name: "basic document",
			doc:  internal.ExportDocument(internal.CreateTestSession("test1")),
		},
		{
			name: "document with all fields",
			doc: &internal.Document{
				ID:        "test3",
				Title:     "Full",
				Model:     "gpt-4",
				Timestamp: "2024-01-01T00:00:00Z",
				Messages: []internal.Message{
					{Role: internal.RoleUser, Content: "Hello"},
					{Role: internal.RoleAssistant, Content: "Hi", Failed: false},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &YAMLExporter{}

			if err := exporter.Export(tt.doc, &buf); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			var back internal.Document
			if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
				t.Fatalf("output is not valid YAML: %v\noutput: %s", err, buf.String())
			}
			if back.Model != tt.doc.Model {
				t.Errorf("round trip model = %q, want %q", back.Model, tt.doc.Model)
			}
			if len(back.Messages) != len(tt.doc.Messages) {
				t.Errorf("round trip messages = %d, want %d", len(back.Messages), len(tt.doc.Messages))
			}
		})
	}
}
