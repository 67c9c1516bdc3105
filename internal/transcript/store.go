package transcript

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"collate/internal/fileutil"
	"collate/internal/services"
)

const extension = ".txt"

// Provider loads documents by name.
type Provider interface {
	Load(name string) (Document, []MalformedRecord, error)
}

// Writer persists documents by name.
type Writer interface {
	Save(doc Document) error
}

// Store maps document names onto <root>/<folder>/<shard>/<name>.txt.
type Store struct {
	root string
}

// NewStore returns a store rooted at the data directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the data directory.
func (s *Store) Root() string {
	return s.root
}

// ShardOf returns the shard directory for a document name: the second
// underscore-separated field, or the name itself when it has none.
func ShardOf(name string) string {
	name = strings.TrimSuffix(name, extension)
	parts := strings.Split(name, "_")
	if len(parts) < 2 || parts[1] == "" {
		return name
	}
	return parts[1]
}

// Path returns the file path of a document in a folder.
func (s *Store) Path(folder, name string) string {
	name = strings.TrimSuffix(name, extension)
	return filepath.Join(s.root, folder, ShardOf(name), name+extension)
}

// Exists reports whether the document is present in a folder.
func (s *Store) Exists(folder, name string) bool {
	info, err := os.Stat(s.Path(folder, name))
	return err == nil && info.Mode().IsRegular()
}

// Read parses a document from a folder. A missing file is reported with
// services.ErrMissingCounterpart.
func (s *Store) Read(folder, name string) (Document, []MalformedRecord, error) {
	name = strings.TrimSuffix(name, extension)
	path := s.Path(folder, name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, nil, services.Wrap(services.ErrMissingCounterpart, folder, "read", name, nil)
		}
		return Document{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(name, f)
}

// ReadRaw returns the file contents of a document without parsing.
func (s *Store) ReadRaw(folder, name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(folder, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrMissingCounterpart, folder, "read", name, nil)
		}
		return nil, err
	}
	return data, nil
}

// Write atomically replaces a document in a folder.
func (s *Store) Write(folder string, doc Document) error {
	if strings.TrimSpace(doc.Name) == "" {
		return errors.New("write document: empty name")
	}
	return fileutil.WriteFileAtomic(s.Path(folder, doc.Name), doc.Bytes(), 0o644)
}

// List returns every document name in a folder, sorted. Non-.txt files are
// ignored; a missing folder yields an empty list.
func (s *Store) List(folder string) ([]string, error) {
	base := filepath.Join(s.root, folder)
	var names []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == base {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), extension) {
			return nil
		}
		names = append(names, strings.TrimSuffix(d.Name(), extension))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", folder, err)
	}
	sort.Strings(names)
	return names, nil
}

// Folder binds a store to one folder.
func (s *Store) Folder(name string) Folder {
	return Folder{store: s, name: name}
}

// Folder is a Provider and Writer over a single store folder.
type Folder struct {
	store *Store
	name  string
}

// Name returns the folder name.
func (f Folder) Name() string {
	return f.name
}

// Load implements Provider.
func (f Folder) Load(name string) (Document, []MalformedRecord, error) {
	return f.store.Read(f.name, name)
}

// Save implements Writer.
func (f Folder) Save(doc Document) error {
	return f.store.Write(f.name, doc)
}

// Exists reports whether name is present in the folder.
func (f Folder) Exists(name string) bool {
	return f.store.Exists(f.name, name)
}

// List returns the names in the folder.
func (f Folder) List() ([]string, error) {
	return f.store.List(f.name)
}
