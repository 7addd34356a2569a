// Package render expands template sets into ready-to-apply Terraform
// trees by substituting ${variable} placeholders.
//
// Rendering is purely textual. Placeholder resolution fails closed: a
// referenced placeholder with no context entry aborts the whole pass
// before any file is written, so a half-rendered tree is never left
// behind. Validation of the rendered Terraform is downstream tooling's
// job.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Context maps placeholder names to substitution values.
type Context map[string]string

// TemplateSet exposes a named, fixed directory of template files.
type TemplateSet interface {
	// Name identifies the set, e.g. "tf.bootstrap".
	Name() string

	// ListFiles returns every template file as a slash-separated path
	// relative to the set root.
	ListFiles() ([]string, error)

	// ReadFile returns the raw content of one template file.
	ReadFile(relativePath string) ([]byte, error)
}

// placeholderRegex matches ${name} placeholders. Terraform's own
// interpolations always contain a dot or function call, so a bare
// identifier is unambiguous.
var placeholderRegex = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

type renderedFile struct {
	relativePath string
	content      []byte
}

// Render expands every file of set into outputDir, preserving relative
// paths. It returns the written file paths.
//
// If outputDir already contains files and overwrite is false, rendering
// fails before writing anything.
func Render(set TemplateSet, ctx Context, outputDir string, overwrite bool) ([]string, error) {
	if err := checkOutputDir(set.Name(), outputDir, overwrite); err != nil {
		return nil, err
	}

	files, err := set.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list template set %s: %w", set.Name(), err)
	}
	sort.Strings(files)

	// Pass 1: render everything in memory so missing placeholders are
	// reported before the first write.
	rendered := make([]renderedFile, 0, len(files))
	for _, rel := range files {
		raw, err := set.ReadFile(rel)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s/%s: %w", set.Name(), rel, err)
		}

		content, missing := substitute(raw, ctx)
		if len(missing) > 0 {
			return nil, &TemplateRenderError{
				Set:     set.Name(),
				File:    rel,
				Missing: missing,
			}
		}
		rendered = append(rendered, renderedFile{relativePath: rel, content: content})
	}

	// Pass 2: write.
	written := make([]string, 0, len(rendered))
	for _, f := range rendered {
		target := filepath.Join(outputDir, filepath.FromSlash(f.relativePath))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(target, f.content, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
	}

	return written, nil
}

// substitute replaces every placeholder and collects the names that had
// no context entry.
func substitute(raw []byte, ctx Context) ([]byte, []string) {
	seen := make(map[string]bool)
	var missing []string

	out := placeholderRegex.ReplaceAllFunc(raw, func(match []byte) []byte {
		name := string(placeholderRegex.FindSubmatch(match)[1])
		value, ok := ctx[name]
		if !ok {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
			return match
		}
		return []byte(value)
	})

	sort.Strings(missing)
	return out, missing
}

// checkOutputDir fails when the target exists, is non-empty, and
// overwrite was not requested. A missing directory is fine; it is
// created during the write pass.
func checkOutputDir(setName, outputDir string, overwrite bool) error {
	entries, err := os.ReadDir(outputDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect output directory %s: %w", outputDir, err)
	}
	if len(entries) > 0 && !overwrite {
		return &TemplateRenderError{
			Set:      setName,
			Conflict: outputDir,
		}
	}
	return nil
}

// TemplateRenderError reports either missing placeholders in a template
// file or an output-directory conflict.
type TemplateRenderError struct {
	Set     string
	File    string
	Missing []string

	// Conflict is the already-populated output directory, when that is
	// the failure.
	Conflict string
}

func (e *TemplateRenderError) Error() string {
	if e.Conflict != "" {
		return fmt.Sprintf("output directory %s is not empty (use --overwrite to replace its contents)", e.Conflict)
	}
	return fmt.Sprintf("template %s/%s references undefined placeholders: %s",
		e.Set, e.File, strings.Join(e.Missing, ", "))
}
