package testutil

import (
	"mime/multipart"
	"testing"

	"github.com/jtsigarra/xferdx/internal/pkg/httputil"

	"github.com/stretchr/testify/require"
)

// CreateEmptyForm creates an empty multipart form for testing.
func CreateEmptyForm() *multipart.Form {
	return &multipart.Form{
		Value: make(map[string][]string),
		File:  make(map[string][]*multipart.FileHeader),
	}
}

// CreateFileForm builds a form carrying a single file under fieldName.
func CreateFileForm(t *testing.T, fieldName, fileName string, content []byte) *multipart.Form {
	t.Helper()

	form, err := httputil.CreateForm(content, fileName, fieldName)
	require.NoError(t, err)
	return form
}

// CreateUploadForm builds a form the way the study upload endpoint receives
// it: value fields plus files spread over named fields.
func CreateUploadForm(t *testing.T, values map[string]string, parts []httputil.FilePart) *multipart.Form {
	t.Helper()

	form, err := httputil.CreateMultiForm(values, parts)
	require.NoError(t, err)
	return form
}
