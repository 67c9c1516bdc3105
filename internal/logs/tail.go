package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
)

const (
	maxLineBytes = 1024 * 1024
	pollInterval = 250 * time.Millisecond
)

// Filter selects log lines. A nil Filter keeps every line.
type Filter func(line string) bool

// Contains keeps lines holding every non-empty term.
func Contains(terms ...string) Filter {
	var kept []string
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return func(line string) bool {
		for _, term := range kept {
			if !strings.Contains(line, term) {
				return false
			}
		}
		return true
	}
}

// Chunk is a batch of lines and the offset just past them.
type Chunk struct {
	Lines  []string
	Offset int64
}

// Tail returns up to limit trailing lines of path that pass filter. A
// missing file yields an empty chunk at offset zero.
func Tail(path string, limit int, filter Filter) (Chunk, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return Chunk{}, err
	}
	defer file.Close()

	if limit <= 0 {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return Chunk{}, fmt.Errorf("seek log file: %w", err)
		}
		return Chunk{Offset: offset}, nil
	}

	ring := make([]string, limit)
	count, next := 0, 0
	offset, err := scan(file, filter, func(line string) {
		ring[next] = line
		next = (next + 1) % limit
		count = min(count+1, limit)
	})
	if err != nil {
		return Chunk{}, err
	}

	lines := make([]string, count)
	start := 0
	if count == limit {
		start = next
	}
	for i := range lines {
		lines[i] = ring[(start+i)%limit]
	}
	return Chunk{Lines: lines, Offset: offset}, nil
}

// Read returns the lines written after offset. An offset beyond the end of
// the file, as after truncation, restarts from the beginning.
func Read(path string, offset int64, filter Filter) (Chunk, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return Chunk{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Chunk{}, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Chunk{}, fmt.Errorf("seek log file: %w", err)
	}

	var lines []string
	end, err := scan(file, filter, func(line string) { lines = append(lines, line) })
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Lines: lines, Offset: end}, nil
}

// Follow polls path from offset and hands every new chunk to emit until ctx
// is done. The context error is not reported.
func Follow(ctx context.Context, path string, offset int64, filter Filter, emit func(Chunk) error) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		chunk, err := Read(path, offset, filter)
		if err != nil {
			return err
		}
		if len(chunk.Lines) > 0 {
			if err := emit(chunk); err != nil {
				return err
			}
		}
		offset = chunk.Offset

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return file, nil
}

// scan feeds complete lines to fn and returns the offset after the last one.
// A trailing partial line is left for the next read.
func scan(file *os.File, filter Filter, fn func(string)) (int64, error) {
	start, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("determine log offset: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	offset := start
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return offset, nil
		}
		if err != nil {
			return offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(line))
		if len(line) > maxLineBytes {
			continue
		}
		line = strings.TrimRight(line, "\r\n")
		if filter == nil || filter(line) {
			fn(line)
		}
	}
}
