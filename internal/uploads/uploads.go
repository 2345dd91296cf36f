// Package uploads stores admin-uploaded assets on the local filesystem and
// serves back their public URLs.
package uploads

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"log/slog"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
)

type Config struct {
	// Dir is the directory uploaded files are written to, created on demand.
	Dir string `mapstructure:"dir"`
	// BaseURL is the public prefix under which Dir is served.
	BaseURL string `mapstructure:"base_url"`
}

type FileStore struct {
	dir     string
	baseURL string
}

func New(c Config) (dependency.FileStore, error) {
	if c.Dir == "" {
		return nil, fmt.Errorf("uploads dir is not set")
	}
	if c.BaseURL == "" {
		c.BaseURL = "/uploads"
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("can't create uploads dir: %w", err)
	}
	return &FileStore{
		dir:     c.Dir,
		baseURL: strings.TrimRight(c.BaseURL, "/"),
	}, nil
}

// SaveFile writes the content under a content-addressed name derived from the
// original filename and a hash of the bytes, so re-uploading the same file is
// idempotent and distinct files never collide.
func (fs *FileStore) SaveFile(ctx context.Context, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty file")
	}

	name := safeName(filename)
	sum := sha256.Sum256(content)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	stored := fmt.Sprintf("%s-%s%s", base, hex.EncodeToString(sum[:8]), ext)

	path := filepath.Join(fs.dir, stored)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("can't write file: %w", err)
	}

	slog.Default().InfoContext(ctx, "file uploaded",
		slog.String("file", stored),
		slog.Int("size", len(content)),
	)
	return fs.baseURL + "/" + stored, nil
}

// ListFiles returns the public URLs of all stored files, sorted by name.
func (fs *FileStore) ListFiles(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("can't read uploads dir: %w", err)
	}
	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		urls = append(urls, fs.baseURL+"/"+e.Name())
	}
	sort.Strings(urls)
	return urls, nil
}

// Dir exposes the storage directory for static file serving.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// safeName strips any path components and characters that have no business
// in a served filename.
func safeName(filename string) string {
	name := filepath.Base(filename)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "file"
	}
	return name
}
