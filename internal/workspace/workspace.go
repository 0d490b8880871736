// Package workspace manages the per-run output directory and the asset
// filename policy. A workspace name combines a sanitized slug, a timestamp,
// and a short random id so that two runs never collide without coordination.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	timestampLayout = "20060102_150405"
	maxSlugLen      = 25
	maxTokenLen     = 20
)

// Workspace is the sole shared resource of one pipeline invocation. There is
// exactly one writer per run, so no locking is needed.
type Workspace struct {
	dir       string
	timestamp string
}

// New creates output/<prefix>_<slug>_<timestamp>_<id>/ under baseDir.
func New(baseDir, prefix, slugSource string) (*Workspace, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("workspace: base dir is required")
	}
	now := time.Now()
	ts := now.Format(timestampLayout)
	name := fmt.Sprintf("%s_%s_%s_%s", prefix, Slug(slugSource, maxSlugLen), ts, shortID())
	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: create run directory: %w", err)
	}
	return &Workspace{dir: dir, timestamp: ts}, nil
}

// Dir returns the absolute-or-relative run directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Timestamp returns the run timestamp embedded in the directory name.
func (w *Workspace) Timestamp() string {
	return w.timestamp
}

// AssetFilename builds {category}_{sanitized-token}_{timestamp}_{id}.{ext}.
// The random id makes names practically unique even within one clock second.
func (w *Workspace) AssetFilename(category, token, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "png"
	}
	slug := Slug(token, maxTokenLen)
	if slug == "" {
		return fmt.Sprintf("%s_%s_%s.%s", category, time.Now().Format(timestampLayout), shortID(), ext)
	}
	return fmt.Sprintf("%s_%s_%s_%s.%s", category, slug, time.Now().Format(timestampLayout), shortID(), ext)
}

// Write persists data under the given file name inside the run directory.
// Names are sanitized so callers cannot escape the workspace.
func (w *Workspace) Write(name string, data []byte) (string, error) {
	clean, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(w.dir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("workspace: ensure directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("workspace: write file: %w", err)
	}
	return full, nil
}

// Slug strips everything outside the alphanumeric/space/hyphen set,
// lower-cases the remainder, joins spaces with underscores, and truncates.
func Slug(v string, limit int) string {
	v = strings.ToLower(strings.TrimSpace(v))
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '_':
			b.WriteRune(' ')
		}
	}
	fields := strings.Fields(b.String())
	slug := strings.Join(fields, "_")
	if limit > 0 && len(slug) > limit {
		slug = slug[:limit]
		slug = strings.Trim(slug, "_")
	}
	return slug
}

func shortID() string {
	return uuid.NewString()[:8]
}

func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace: file name is required")
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimLeft(name, "/")
	cleaned := filepath.Clean(name)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("workspace: invalid file name")
	}
	return cleaned, nil
}
