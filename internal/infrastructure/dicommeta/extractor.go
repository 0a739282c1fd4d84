// Package dicommeta extracts header metadata from DICOM payloads.
package dicommeta

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// headerTags lists the DICOM tags surfaced to the study metadata map.
var headerTags = []struct {
	name string
	tag  tag.Tag
}{
	{"PatientID", tag.PatientID},
	{"PatientName", tag.PatientName},
	{"Modality", tag.Modality},
	{"StudyDate", tag.StudyDate},
	{"StudyInstanceUID", tag.StudyInstanceUID},
	{"SeriesInstanceUID", tag.SeriesInstanceUID},
}

type dicomExtractor struct {
	logger logger.Logger
}

// NewDicomExtractor creates a MetadataExtractor that parses DICOM headers.
func NewDicomExtractor(logger logger.Logger) studies.MetadataExtractor {
	return &dicomExtractor{logger: logger}
}

// The standard file layout puts a 128-byte preamble before the magic word.
const (
	preambleLength = 128
	magicWord      = "DICM"
)

func (e *dicomExtractor) Extract(data []byte) (map[string]string, error) {
	// The parser tolerates payloads without the magic word, so verify it
	// up front instead of stamping metadata onto arbitrary bytes.
	if len(data) < preambleLength+len(magicWord) ||
		string(data[preambleLength:preambleLength+len(magicWord)]) != magicWord {
		return nil, errors.New("payload is missing the DICM magic word")
	}

	ds, err := dicom.ParseUntilEOF(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DICOM payload: %w", err)
	}

	metadata := make(map[string]string, len(headerTags))
	for _, ht := range headerTags {
		el, err := ds.FindElementByTag(ht.tag)
		if err != nil || el == nil {
			continue
		}
		if value := elementString(el.Value.GetValue()); value != "" {
			metadata[ht.name] = value
		}
	}

	return metadata, nil
}

// elementString flattens a parsed element value into a display string.
// String VRs parse as []string; anything else is skipped.
func elementString(value interface{}) string {
	switch v := value.(type) {
	case []string:
		parts := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\\")
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}
