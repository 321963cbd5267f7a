// Package respack reads resource packs stored as directories or zip archives.
package respack

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrFileNotFound is returned by Read for paths the pack does not contain.
var ErrFileNotFound = errors.New("file not found")

// MetaFile is the pack descriptor at the root of every resource pack.
const MetaFile = "pack.mcmeta"

// Archive represents an opened resource pack.
type Archive struct {
	name     string
	root     string // set for directory packs
	zip      *zip.ReadCloser
	fileList map[string]*Entry
}

// Entry represents a file in the pack.
type Entry struct {
	Name string
	Size int64

	zf *zip.File
}

// PackMeta is the "pack" section of pack.mcmeta.
type PackMeta struct {
	Format      int             `json:"pack_format"`
	Description json.RawMessage `json:"description"`
}

// DescriptionText returns the description when it is a plain string,
// or the raw JSON text component otherwise.
func (m PackMeta) DescriptionText() string {
	var s string
	if err := json.Unmarshal(m.Description, &s); err == nil {
		return s
	}
	return string(m.Description)
}

// Open opens a resource pack. Directories are read in place; any other
// path is opened as a zip archive.
func Open(p string) (*Archive, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("opening pack: %w", err)
	}

	archive := &Archive{
		name:     filepath.Base(p),
		fileList: make(map[string]*Entry),
	}

	if info.IsDir() {
		archive.root = p
		if err := archive.readDirTable(); err != nil {
			return nil, fmt.Errorf("reading directory table: %w", err)
		}
		return archive, nil
	}

	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}
	archive.zip = zr
	archive.readZipTable()
	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.zip != nil {
		return a.zip.Close()
	}
	return nil
}

// Name returns the base name of the pack on disk.
func (a *Archive) Name() string {
	return a.name
}

func (a *Archive) readDirTable() error {
	return filepath.WalkDir(a.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(a.root, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		name := normalizePath(rel)
		a.fileList[name] = &Entry{Name: name, Size: info.Size()}
		return nil
	})
}

func (a *Archive) readZipTable() {
	for _, f := range a.zip.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := normalizePath(f.Name)
		a.fileList[name] = &Entry{
			Name: name,
			Size: int64(f.UncompressedSize64),
			zf:   f,
		}
	}
}

// List returns all file paths in the pack, sorted.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.fileList))
	for p := range a.fileList {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(p string) bool {
	_, ok := a.fileList[normalizePath(p)]
	return ok
}

// Read reads a file from the pack.
func (a *Archive) Read(p string) ([]byte, error) {
	entry, ok := a.fileList[normalizePath(p)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
	}

	if entry.zf == nil {
		return os.ReadFile(filepath.Join(a.root, filepath.FromSlash(entry.Name)))
	}

	rc, err := entry.zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Meta reads and decodes pack.mcmeta.
func (a *Archive) Meta() (PackMeta, error) {
	data, err := a.Read(MetaFile)
	if err != nil {
		return PackMeta{}, err
	}
	var doc struct {
		Pack PackMeta `json:"pack"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return PackMeta{}, fmt.Errorf("parsing %s: %w", MetaFile, err)
	}
	return doc.Pack, nil
}

// normalizePath converts to forward slashes and strips leading "./" and "/".
// Case is preserved: resource identifiers are case-sensitive.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}
