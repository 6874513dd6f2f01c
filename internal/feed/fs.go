package feed

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed bundled/*.json
var bundled embed.FS

// FSSource reads the documents from a file system root.
type FSSource struct {
	FS    fs.FS
	Label string
}

// NewBundled returns the sample feed compiled into the binary.
func NewBundled() *FSSource {
	sub, err := fs.Sub(bundled, "bundled")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return &FSSource{FS: sub, Label: "bundled"}
}

// NewDir reads the documents from dir on disk.
func NewDir(dir string) *FSSource {
	return &FSSource{FS: os.DirFS(dir), Label: "dir:" + dir}
}

func (s *FSSource) Name() string { return s.Label }

func (s *FSSource) Load(ctx context.Context) (Documents, error) {
	var docs Documents
	for _, name := range DocumentNames {
		if err := ctx.Err(); err != nil {
			return Documents{}, loadError(name, err)
		}
		b, err := fs.ReadFile(s.FS, name)
		if err != nil {
			return Documents{}, loadError(name, err)
		}
		if err := checkJSON(name, b); err != nil {
			return Documents{}, err
		}
		docs.set(name, b)
	}
	return docs, nil
}

// WriteDir writes docs into dir using the file names NewDir reads.
func WriteDir(dir string, docs Documents) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range DocumentNames {
		b, _ := docs.Get(name)
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
