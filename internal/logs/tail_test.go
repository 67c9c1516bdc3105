package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"collate/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collate.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailLastLines(t *testing.T) {
	content := "a\nb\nc\n"
	path := writeLog(t, content)

	chunk, err := logs.Tail(path, 2, nil)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if !slices.Equal(chunk.Lines, []string{"b", "c"}) {
		t.Fatalf("unexpected lines: %#v", chunk.Lines)
	}
	if chunk.Offset != int64(len(content)) {
		t.Fatalf("offset = %d, want %d", chunk.Offset, len(content))
	}
}

func TestTailFiltersAndKeepsPartialLine(t *testing.T) {
	path := writeLog(t, "WARN document=GL_1 x\nINFO document=GL_2\nWARN document=GL_1 y\npartial")

	chunk, err := logs.Tail(path, 10, logs.Contains("GL_1", "WARN"))
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if !slices.Equal(chunk.Lines, []string{"WARN document=GL_1 x", "WARN document=GL_1 y"}) {
		t.Fatalf("unexpected lines: %#v", chunk.Lines)
	}

	if err := os.WriteFile(path, []byte("WARN document=GL_1 x\nINFO document=GL_2\nWARN document=GL_1 y\npartial line\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	next, err := logs.Read(path, chunk.Offset, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !slices.Equal(next.Lines, []string{"partial line"}) {
		t.Fatalf("unexpected follow-up lines: %#v", next.Lines)
	}
}

func TestTailMissingFile(t *testing.T) {
	chunk, err := logs.Tail(filepath.Join(t.TempDir(), "absent.log"), 5, nil)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(chunk.Lines) != 0 || chunk.Offset != 0 {
		t.Fatalf("unexpected chunk %+v", chunk)
	}
}

func TestReadRestartsAfterTruncation(t *testing.T) {
	path := writeLog(t, "fresh\n")

	chunk, err := logs.Read(path, 1000, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !slices.Equal(chunk.Lines, []string{"fresh"}) {
		t.Fatalf("unexpected lines: %#v", chunk.Lines)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")
	start, err := logs.Tail(path, 1, nil)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, start.Offset, nil, func(c logs.Chunk) error {
			mu.Lock()
			got = append(got, c.Lines...)
			mu.Unlock()
			cancel()
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString("later\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
	_ = f.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Follow: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("follow did not return")
	}
	mu.Lock()
	defer mu.Unlock()
	if !slices.Equal(got, []string{"later"}) {
		t.Fatalf("followed lines = %#v", got)
	}
}
