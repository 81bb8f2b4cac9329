// Package fs reads manifests and pages from the local filesystem.
package fs

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/philschmid/gemdocs"
)

// DefaultMaxBodySize caps how much of a file is read.
const DefaultMaxBodySize = 16 << 20

// Ensure Fetcher implements gemdocs.Fetcher at compile time.
var _ gemdocs.Fetcher = (*Fetcher)(nil)

// Fetcher implements gemdocs.Fetcher over local files. It accepts plain
// paths and file:// URLs.
type Fetcher struct {
	MaxBodySize int64
}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{MaxBodySize: DefaultMaxBodySize}
}

// Fetch reads the file named by source.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*gemdocs.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, ok := Path(source)
	if !ok {
		return nil, gemdocs.Errorf(gemdocs.EINVALID, "not a local path: %q", source)
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, gemdocs.Errorf(gemdocs.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	defer file.Close()

	limit := f.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return nil, err
	}

	return &gemdocs.Response{
		URL:         source,
		ContentType: contentType(path),
		Body:        body,
	}, nil
}

// Path returns the filesystem path for source when it names a local file.
// http and https URLs report false.
func Path(source string) (string, bool) {
	if source == "" {
		return "", false
	}
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// No scheme, or a Windows drive letter.
		return source, true
	}
	if u.Scheme == "file" {
		return filepath.FromSlash(u.Path), true
	}
	return "", false
}

// IsLocal reports whether source refers to a local file.
func IsLocal(source string) bool {
	_, ok := Path(source)
	return ok
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md":
		return "text/plain; charset=utf-8"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "text/plain; charset=utf-8"
}
