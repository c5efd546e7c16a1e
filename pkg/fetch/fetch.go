// Package fetch retrieves the markup of a specification document from a
// URL or a local path.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/spf13/afero"
)

var ErrFetch = errors.New("cannot fetch document")

// Documents bigger than this are rejected
const MaxDocumentSize = 64 << 20

// Returns the markup text of a document given its reference
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (string, error)
}

// Fetches http and https URLs
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return "", utils.MakeError(ErrFetch, "%v", err)
	}

	req.Header.Set("Accept", "text/html, application/xhtml+xml")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", utils.MakeError(ErrFetch, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", utils.MakeError(ErrFetch, "GET %v: %v", ref, resp.Status)
	}

	return readAll(resp.Body, ref)
}

// Reads documents from a filesystem
type FileFetcher struct {
	Fs afero.Fs
}

func (f *FileFetcher) Fetch(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", utils.MakeError(ErrFetch, "%v", err)
	}

	file, err := f.Fs.Open(filepath.Clean(ref))
	if err != nil {
		return "", utils.MakeError(ErrFetch, "%v", err)
	}
	defer file.Close()

	return readAll(file, ref)
}

// Dispatches references to the HTTP or file fetcher depending on their scheme.
// "file://" URLs and plain paths are read from the filesystem.
type Source struct {
	HTTP *HTTPFetcher
	File *FileFetcher
}

func NewSource(client *http.Client, fs afero.Fs) *Source {
	return &Source{
		HTTP: &HTTPFetcher{Client: client},
		File: &FileFetcher{Fs: fs},
	}
}

func (s *Source) Fetch(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", utils.MakeError(ErrFetch, "empty document reference")
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path. Single letter schemes are Windows drive letters.
		return s.File.Fetch(ctx, ref)
	}

	switch u.Scheme {
	case "http", "https":
		return s.HTTP.Fetch(ctx, ref)
	case "file":
		return s.File.Fetch(ctx, u.Path)
	default:
		return "", utils.MakeError(ErrFetch, "unsupported scheme '%v' in '%v'", u.Scheme, ref)
	}
}

func readAll(r io.Reader, ref string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return "", utils.MakeError(ErrFetch, "reading %v: %v", ref, err)
	}

	if len(data) > MaxDocumentSize {
		return "", utils.MakeError(ErrFetch, "%v is bigger than %v bytes", ref, MaxDocumentSize)
	}

	return string(data), nil
}

// Fetches a document giving up after timeout
func WithTimeout(ctx context.Context, f Fetcher, ref string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := f.Fetch(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("fetching '%v': %w", ref, err)
	}

	return text, nil
}
