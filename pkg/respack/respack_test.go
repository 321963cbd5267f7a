package respack

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var testFiles = map[string]string{
	"pack.mcmeta": `{"pack": {"pack_format": 15, "description": "Test pack"}}`,
	"assets/minecraft/models/block/stone.json": `{"parent": "block/cube_all"}`,
	"assets/mymod/textures/block/Ore.png":      "not really a png",
}

// writeDirPack lays testFiles out under a temp directory.
func writeDirPack(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range testFiles {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

// writeZipPack stores testFiles in a zip archive.
func writeZipPack(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pack.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	if _, err := zw.Create("assets/"); err != nil {
		t.Fatalf("failed to add dir entry: %v", err)
	}
	for name, body := range testFiles {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return p
}

func TestOpenAndRead(t *testing.T) {
	packs := map[string]string{
		"dir": writeDirPack(t),
		"zip": writeZipPack(t),
	}

	for kind, path := range packs {
		t.Run(kind, func(t *testing.T) {
			archive, err := Open(path)
			if err != nil {
				t.Fatalf("failed to open pack: %v", err)
			}
			defer archive.Close()

			files := archive.List()
			if len(files) != len(testFiles) {
				t.Fatalf("expected %d files, got %d: %v", len(testFiles), len(files), files)
			}

			for name, body := range testFiles {
				data, err := archive.Read(name)
				if err != nil {
					t.Errorf("failed to read %s: %v", name, err)
					continue
				}
				if string(data) != body {
					t.Errorf("%s: got %q, want %q", name, data, body)
				}
			}
		})
	}
}

func TestContains(t *testing.T) {
	archive, err := Open(writeDirPack(t))
	if err != nil {
		t.Fatalf("failed to open pack: %v", err)
	}
	defer archive.Close()

	if !archive.Contains("assets/minecraft/models/block/stone.json") {
		t.Error("Contains returned false for existing file")
	}
	if !archive.Contains("./assets\\minecraft/models/block/stone.json") {
		t.Error("Contains should normalize separators and leading ./")
	}
	if archive.Contains("assets/mymod/textures/block/ore.png") {
		t.Error("Contains should be case-sensitive")
	}
	if archive.Contains("nonexistent/file/path.txt") {
		t.Error("Contains returned true for non-existent file")
	}
}

func TestReadMissing(t *testing.T) {
	archive, err := Open(writeZipPack(t))
	if err != nil {
		t.Fatalf("failed to open pack: %v", err)
	}
	defer archive.Close()

	_, err = archive.Read("assets/minecraft/models/block/missing.json")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestMeta(t *testing.T) {
	archive, err := Open(writeDirPack(t))
	if err != nil {
		t.Fatalf("failed to open pack: %v", err)
	}
	defer archive.Close()

	meta, err := archive.Meta()
	if err != nil {
		t.Fatalf("failed to read meta: %v", err)
	}
	if meta.Format != 15 {
		t.Errorf("expected pack format 15, got %d", meta.Format)
	}
	if meta.DescriptionText() != "Test pack" {
		t.Errorf("expected description 'Test pack', got %q", meta.DescriptionText())
	}
}

func TestMetaTextComponent(t *testing.T) {
	meta := PackMeta{Description: []byte(`{"text": "fancy"}`)}
	if got := meta.DescriptionText(); got != `{"text": "fancy"}` {
		t.Errorf("unexpected description %q", got)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.zip")); err == nil {
		t.Error("expected error opening missing pack")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"assets/a.json":    "assets/a.json",
		"./assets/a.json":  "assets/a.json",
		"/assets/a.json":   "assets/a.json",
		"assets\\A.json":   "assets/A.json",
		"assets//x/../a.b": "assets/a.b",
	}
	for in, want := range tests {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
