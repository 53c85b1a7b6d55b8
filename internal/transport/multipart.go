// Package transport ships encoded submissions to a listing backend as
// multipart/form-data, reporting upload progress as the body streams out.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/guptabinit/listform/internal/payload"
)

const defaultTimeout = 60 * time.Second

// Multipart posts submission parts to a fixed endpoint URL.
type Multipart struct {
	url    string
	client *http.Client
}

// New creates a multipart transport for the given endpoint URL.
func New(url string) (*Multipart, error) {
	if url == "" {
		return nil, errors.New("endpoint URL is required")
	}
	return &Multipart{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Send encodes the parts into a multipart body and posts it. The progress
// callback receives bytes-written updates as the body is read by the HTTP
// client; it may be nil.
func (t *Multipart) Send(ctx context.Context, parts []payload.Pair, progress func(loaded, total int64)) error {
	body, contentType, err := buildBody(parts)
	if err != nil {
		return err
	}

	total := int64(body.Len())
	var reader io.Reader = body
	if progress != nil {
		reader = &progressReader{r: body, total: total, report: progress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submission rejected with status %d", resp.StatusCode)
	}
	return nil
}

// buildBody assembles the multipart body. File parts with a local path are
// streamed from disk; file parts without one are sent as bare filenames, as
// the edit flow does for images already stored on the server.
func buildBody(parts []payload.Pair) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range parts {
		if p.File == nil {
			if err := w.WriteField(p.Key, p.Value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %q: %w", p.Key, err)
			}
			continue
		}

		if p.File.Path == "" {
			if err := w.WriteField(p.Key, p.File.Name); err != nil {
				return nil, "", fmt.Errorf("failed to write field %q: %w", p.Key, err)
			}
			continue
		}

		fw, err := w.CreateFormFile(p.Key, p.File.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %q: %w", p.Key, err)
		}
		f, err := os.Open(p.File.Path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %q: %w", p.File.Path, err)
		}
		_, err = io.Copy(fw, f)
		f.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %q: %w", p.File.Path, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// progressReader surfaces read progress to a callback.
type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	report func(loaded, total int64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.loaded += int64(n)
		pr.report(pr.loaded, pr.total)
	}
	return n, err
}
