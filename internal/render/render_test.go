package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullContext() Context {
	return Context{
		"account_id":     "123456789012",
		"account_name":   "sandbox",
		"bucket_name":    "tf-state-sandbox-789012",
		"dynamodb_table": "tf-locks-sandbox",
		"region":         "us-east-1",
		"profile_name":   "tf-user-sandbox",
	}
}

func writeTemplate(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTemplate(t, src, "terraform.tfvars", "account_id = \"${account_id}\"\nregion = \"${region}\"\n")
	writeTemplate(t, src, "nested/notes.txt", "state bucket: ${bucket_name}\n")

	out := filepath.Join(t.TempDir(), "rendered")
	written, err := Render(Dir("custom", src), fullContext(), out, false)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	content, err := os.ReadFile(filepath.Join(out, "terraform.tfvars"))
	require.NoError(t, err)
	assert.Equal(t, "account_id = \"123456789012\"\nregion = \"us-east-1\"\n", string(content))

	content, err = os.ReadFile(filepath.Join(out, "nested", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "state bucket: tf-state-sandbox-789012\n", string(content))
}

func TestRenderMissingPlaceholderWritesNothing(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTemplate(t, src, "ok.tfvars", "region = \"${region}\"\n")
	writeTemplate(t, src, "zz-bad.tfvars", "x = \"${no_such_var}\"\ny = \"${other_missing}\"\n")

	out := filepath.Join(t.TempDir(), "rendered")
	_, err := Render(Dir("custom", src), fullContext(), out, false)
	require.Error(t, err)

	var renderErr *TemplateRenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "zz-bad.tfvars", renderErr.File)
	assert.Equal(t, []string{"no_such_var", "other_missing"}, renderErr.Missing)

	// Atomic failure: not even the valid file was written.
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output directory should not have been created")
}

func TestRenderRefusesNonEmptyOutputDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTemplate(t, src, "main.tf", "# empty\n")

	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "in-progress.tf"), []byte("keep me"), 0o644))

	_, err := Render(Dir("custom", src), fullContext(), out, false)
	require.Error(t, err)

	var renderErr *TemplateRenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, out, renderErr.Conflict)

	// The existing file is untouched.
	content, err := os.ReadFile(filepath.Join(out, "in-progress.tf"))
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestRenderOverwriteFlag(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTemplate(t, src, "main.tf", "region = \"${region}\"\n")

	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "main.tf"), []byte("old"), 0o644))

	written, err := Render(Dir("custom", src), fullContext(), out, true)
	require.NoError(t, err)
	assert.Len(t, written, 1)

	content, err := os.ReadFile(filepath.Join(out, "main.tf"))
	require.NoError(t, err)
	assert.Equal(t, "region = \"us-east-1\"\n", string(content))
}

func TestEmbeddedSetsRenderCleanly(t *testing.T) {
	t.Parallel()

	for _, name := range []string{SetBootstrap, SetSkeleton} {
		t.Run(name, func(t *testing.T) {
			set, err := Embedded(name)
			require.NoError(t, err)

			out := filepath.Join(t.TempDir(), name)
			written, err := Render(set, fullContext(), out, false)
			require.NoError(t, err)
			require.NotEmpty(t, written)

			// No unsubstituted placeholders remain in any output file.
			for _, path := range written {
				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.NotRegexp(t, `\$\{[A-Za-z0-9_]+\}`, string(content), "leftover placeholder in %s", path)
			}
		})
	}
}

func TestEmbeddedUnknownSet(t *testing.T) {
	t.Parallel()

	set, err := Embedded("tf.missing")
	if err != nil {
		return
	}
	// fs.Sub does not fail for a nonexistent directory, so listing must.
	_, err = set.ListFiles()
	assert.Error(t, err)
}

func TestSubstituteReportsEachNameOnce(t *testing.T) {
	t.Parallel()

	out, missing := substitute([]byte("${a} ${a} ${b}"), Context{"b": "B"})
	assert.Equal(t, []string{"a"}, missing)
	assert.Equal(t, "${a} ${a} B", string(out))
}
