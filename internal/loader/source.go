package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Source yields raw CSV text.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a CSV file from the server's disk.
type FileSource struct {
	Path string
}

func (source FileSource) Name() string {
	return source.Path
}

func (source FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(source.Path)
}

// URLSource downloads a CSV document over HTTP.
type URLSource struct {
	URL     string
	Timeout time.Duration
}

func (source URLSource) Name() string {
	return source.URL
}

type fetchResult struct {
	status int
	body   []byte
	errs   []error
}

func (source URLSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan fetchResult, 1)
	go func() {
		agent := fiber.Get(source.URL)
		if source.Timeout > 0 {
			agent.Timeout(source.Timeout)
		}
		status, body, errs := agent.Bytes()
		done <- fetchResult{status: status, body: body, errs: errs}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-done:
		if len(result.errs) > 0 {
			return nil, errors.Join(result.errs...)
		}
		if result.status < fiber.StatusOK || result.status >= fiber.StatusMultipleChoices {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, result.status)
		}
		return io.NopCloser(bytes.NewReader(result.body)), nil
	}
}

// UploadSource reads a file the user picked in the upload form.
type UploadSource struct {
	Header *multipart.FileHeader
}

func (source UploadSource) Name() string {
	if source.Header == nil {
		return ""
	}
	return source.Header.Filename
}

func (source UploadSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source.Header == nil || strings.TrimSpace(source.Header.Filename) == "" {
		return nil, ErrNoFile
	}
	if !HasCSVExtension(source.Header.Filename) {
		return nil, ErrNotCSV
	}
	return source.Header.Open()
}

func HasCSVExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), ".csv")
}

// SourceFor picks a URLSource for http(s) locations and a FileSource otherwise.
func SourceFor(location string, timeout time.Duration) Source {
	trimmed := strings.TrimSpace(location)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return URLSource{URL: trimmed, Timeout: timeout}
	}
	return FileSource{Path: trimmed}
}
