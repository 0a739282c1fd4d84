// Package httputil provides helpers for building and reading multipart
// forms the way gin hands them to handlers.
package httputil

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// maxFormMemory caps in-memory form parsing at 32 MB, matching the REST
// layer's multipart limit.
const maxFormMemory = 32 << 20

// FilePart is one file destined for a multipart form field.
type FilePart struct {
	Field    string
	FileName string
	Content  []byte
}

// CreateForm builds an in-memory multipart form containing a single file
// part under fieldName.
func CreateForm(content []byte, fileName string, fieldName string) (*multipart.Form, error) {
	return CreateMultiForm(nil, []FilePart{{Field: fieldName, FileName: fileName, Content: content}})
}

// CreateMultiForm builds an in-memory multipart form from value fields and
// file parts, mirroring what a browser upload produces.
func CreateMultiForm(values map[string]string, parts []FilePart) (*multipart.Form, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range values {
		if err := writer.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", field, err)
		}
	}

	for _, p := range parts {
		filePart, err := writer.CreateFormFile(p.Field, p.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file %s: %w", p.FileName, err)
		}
		if _, err := filePart.Write(p.Content); err != nil {
			return nil, fmt.Errorf("failed to write form file %s: %w", p.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form writer: %w", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(maxFormMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to read form back: %w", err)
	}

	// ReadForm leaves Size unset for parts kept in memory.
	for _, p := range parts {
		for _, header := range form.File[p.Field] {
			if header.Filename == p.FileName && header.Size == 0 {
				header.Size = int64(len(p.Content))
			}
		}
	}

	return form, nil
}

// ReadFormFile opens a multipart file header and returns its content.
func ReadFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", header.Filename, err)
	}
	return buf.Bytes(), nil
}
