package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/kelsall/chatline/internal"
	"github.com/kelsall/chatline/testutil"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	return rootCmd.Execute()
}

func TestExportCommand_InvalidFormat(t *testing.T) {
	defer func() { exportFormat = "json" }()

	if err := run(t, "export", "some-id", "--format", "invalid"); err == nil {
		t.Error("export with invalid format should error")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	backend := testutil.NewBackendServer(t)
	defer func() {
		serverURL = internal.DefaultServerURL
		exportFormat = "json"
		exportOut = ""
	}()

	// Seed a session with one exchange.
	if err := run(t, "--server", backend.URL, "new", "--model", "gpt-4"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := run(t, "--server", backend.URL, "send", "chat-1", "hello there"); err != nil {
		t.Fatalf("send: %v", err)
	}

	out := filepath.Join(t.TempDir(), "session.json")
	if err := run(t, "--server", backend.URL, "export", "chat-1", "--format", "json", "--out", out); err != nil {
		t.Fatalf("export: %v", err)
	}

	doc, err := internal.ParseDocument(testutil.LoadFixture(t, out))
	if err != nil {
		t.Fatalf("exported file failed validation: %v", err)
	}
	if len(doc.Messages) != 2 {
		t.Fatalf("exported messages = %d, want 2", len(doc.Messages))
	}

	if err := run(t, "--server", backend.URL, "import", out); err != nil {
		t.Fatalf("import: %v", err)
	}

	imported := backend.Chat("chat-2")
	if imported == nil {
		t.Fatal("import created no backend session")
	}
	// The backend appended an echo reply per replayed message.
	if len(imported.Messages) != 4 {
		t.Errorf("backend session has %d messages after replaying 2, want 4", len(imported.Messages))
	}
}
