package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"collate/internal/config"
	"collate/internal/transcript"
)

// WriteDocument stores texts as a numbered document in folder.
func WriteDocument(t testing.TB, cfg *config.Config, folder, name string, texts ...string) string {
	t.Helper()

	store := transcript.NewStore(cfg.Paths.DataDir)
	if err := store.Write(folder, transcript.FromTexts(name, texts)); err != nil {
		t.Fatalf("write document %s/%s: %v", folder, name, err)
	}
	return store.Path(folder, name)
}

// WriteRaw stores content verbatim at the document path for name in folder.
func WriteRaw(t testing.TB, cfg *config.Config, folder, name, content string) string {
	t.Helper()

	path := transcript.NewStore(cfg.Paths.DataDir).Path(folder, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadTexts loads the payloads of a stored document, failing the test when it
// is missing or malformed.
func ReadTexts(t testing.TB, cfg *config.Config, folder, name string) []string {
	t.Helper()

	doc, malformed, err := transcript.NewStore(cfg.Paths.DataDir).Read(folder, name)
	if err != nil {
		t.Fatalf("read %s/%s: %v", folder, name, err)
	}
	if len(malformed) > 0 {
		t.Fatalf("read %s/%s: %d malformed records", folder, name, len(malformed))
	}
	return doc.Texts()
}

// Records joins texts as "NN:text" lines for raw fixtures.
func Records(texts ...string) string {
	var b strings.Builder
	for _, rec := range transcript.FromTexts("", texts).Records() {
		b.WriteString(rec)
		b.WriteByte('\n')
	}
	return b.String()
}
