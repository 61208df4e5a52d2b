// Package extractor turns an uploaded resume file into plain text.
//
// The strategy is picked from the declared media type only; the bytes are never sniffed.
// Unknown media types produce an empty document rather than an error.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	"career-assistant-be/pkg/ocr"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeText = "text/plain"
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"

	imagePrefix = "image/"
)

type Format string

const (
	FormatPDF         Format = "pdf"
	FormatDOCX        Format = "docx"
	FormatImage       Format = "image"
	FormatText        Format = "text"
	FormatUnsupported Format = "unsupported"
)

var ErrOCRUnavailable = errors.New("no ocr provider configured")

// File is an uploaded file as declared by the client.
type File struct {
	Name      string
	MediaType string
	Content   []byte
}

// Document is the result of one extraction.
type Document struct {
	FileName string `json:"file_name"`
	Format   Format `json:"format"`
	Text     string `json:"text"`
}

// Error identifies the stage of the pipeline that failed.
type Error struct {
	Format Format
	Stage  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s extraction failed at %s: %v", e.Format, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Extractor struct {
	ocr ocr.Provider
}

func New(ocrProvider ocr.Provider) *Extractor {
	return &Extractor{ocr: ocrProvider}
}

// FormatOf maps a declared media type onto the strategy that will handle it.
func FormatOf(mediaType string) Format {
	mt := normalizeMediaType(mediaType)
	switch {
	case mt == MediaTypePDF:
		return FormatPDF
	case mt == MediaTypeDOCX:
		return FormatDOCX
	case strings.HasPrefix(mt, imagePrefix):
		return FormatImage
	case mt == MediaTypeText:
		return FormatText
	default:
		return FormatUnsupported
	}
}

func (x *Extractor) Extract(ctx context.Context, f File) (*Document, error) {
	doc := &Document{FileName: f.Name, Format: FormatOf(f.MediaType)}

	var err error
	switch doc.Format {
	case FormatPDF:
		doc.Text, err = extractPDF(f.Content)
	case FormatDOCX:
		doc.Text, err = extractDOCX(f.Content)
	case FormatImage:
		doc.Text, err = x.extractImage(ctx, f.Content)
	case FormatText:
		doc.Text = string(f.Content)
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (x *Extractor) extractImage(ctx context.Context, content []byte) (text string, err error) {
	if x.ocr == nil {
		return "", &Error{Format: FormatImage, Stage: "ocr-init", Err: ErrOCRUnavailable}
	}

	engine, err := x.ocr.NewEngine(ctx, ocr.LanguageEnglish)
	if err != nil {
		return "", &Error{Format: FormatImage, Stage: "ocr-init", Err: err}
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil && err == nil {
			text = ""
			err = &Error{Format: FormatImage, Stage: "ocr-teardown", Err: cerr}
		}
	}()

	text, err = engine.Recognize(ctx, content)
	if err != nil {
		return "", &Error{Format: FormatImage, Stage: "recognize", Err: err}
	}
	return text, nil
}

func normalizeMediaType(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
