// Package upload sends local image files to the media endpoints.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotImage = errors.New("only image files can be uploaded")

type Client interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	UploadPublic(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

type Adapter struct {
	client Client
	open   func(name string) (io.ReadCloser, error)
}

func New(client Client) *Adapter {
	return &Adapter{
		client: client,
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

// File uploads path with the caller's session and returns the hosted URL.
func (a *Adapter) File(ctx context.Context, path string) (string, error) {
	return a.send(ctx, path, a.client.Upload)
}

// PublicFile uploads without a session, for the registration form.
func (a *Adapter) PublicFile(ctx context.Context, path string) (string, error) {
	return a.send(ctx, path, a.client.UploadPublic)
}

type sendFunc func(ctx context.Context, filename, contentType string, r io.Reader) (string, error)

func (a *Adapter) send(ctx context.Context, path string, send sendFunc) (string, error) {
	contentType, err := ContentType(path)
	if err != nil {
		return "", err
	}

	f, err := a.open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	url, err := send(ctx, filepath.Base(path), contentType, f)
	if err != nil {
		return "", err
	}
	return url, nil
}

// ContentType applies the image/* picker filter by file extension. Content
// checks are the server's job.
func ContentType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", ErrNotImage
	}
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = extraTypes[ext]
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	return contentType, nil
}

// extraTypes covers formats missing from minimal mime tables.
var extraTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
}
