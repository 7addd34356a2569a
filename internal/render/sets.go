package render

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

// Built-in template set names.
const (
	SetBootstrap = "tf.bootstrap"
	SetSkeleton  = "tf.skel"
)

//go:embed all:templates
var embeddedTemplates embed.FS

// Embedded returns one of the built-in template sets shipped with the
// binary.
func Embedded(name string) (TemplateSet, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("unknown template set %q: %w", name, err)
	}
	return &fsTemplateSet{name: name, fsys: sub}, nil
}

// Dir returns a template set backed by a directory on disk, used for
// custom template trees and in tests.
func Dir(name, path string) TemplateSet {
	return &fsTemplateSet{name: name, fsys: os.DirFS(path)}
}

type fsTemplateSet struct {
	name string
	fsys fs.FS
}

func (s *fsTemplateSet) Name() string {
	return s.name
}

func (s *fsTemplateSet) ListFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *fsTemplateSet) ReadFile(relativePath string) ([]byte, error) {
	return fs.ReadFile(s.fsys, relativePath)
}
