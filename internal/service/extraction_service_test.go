package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-assistant-be/internal/pkg/logger"
	"career-assistant-be/pkg/career"
	"career-assistant-be/pkg/events"
	"career-assistant-be/pkg/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtraction(f *fixture, ext Extractor) IExtractionService {
	return NewExtractionService(f.session, ext, f.publisher, logger.NewNopLogger())
}

func pdfUpload(name string) extractor.File {
	return extractor.File{Name: name, MediaType: extractor.MediaTypePDF, Content: []byte("%PDF-1.4")}
}

func TestExtractionService_Upload(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ext := &fakeExtractor{doc: &extractor.Document{Format: extractor.FormatPDF, Text: "Jane Doe, nurse"}}

	res, err := newExtraction(f, ext).Upload(ctx, "u1", pdfUpload("cv.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "cv.pdf", res.FileName)
	assert.Equal(t, "Jane Doe, nurse", res.Text)
	assert.False(t, res.Superseded)

	snap, _ := f.session.State(ctx, "u1")
	assert.False(t, snap.Processing)
	assert.Equal(t, career.IntentResume, snap.ActiveIntent)
	require.NotNil(t, snap.Document)
	assert.Equal(t, len("Jane Doe, nurse"), snap.Document.Length)

	assert.Equal(t, []string{
		events.TypeSectionActivated,
		events.TypeExtractionStarted,
		events.TypeExtractionFinished,
	}, f.publisher.types())
}

func TestExtractionService_RejectsUnlistedExtension(t *testing.T) {
	f := newFixture()
	_, err := newExtraction(f, &fakeExtractor{}).Upload(context.Background(), "u1", extractor.File{Name: "cv.doc"})

	assert.ErrorIs(t, err, extractor.ErrUnsupportedUpload)
	assert.Empty(t, f.publisher.types())
}

func TestExtractionService_Failures(t *testing.T) {
	tests := []struct {
		name       string
		file       extractor.File
		ext        *fakeExtractor
		wantPrefix string
	}{
		{
			name:       "pdf error",
			file:       pdfUpload("cv.pdf"),
			ext:        &fakeExtractor{err: &extractor.Error{Format: extractor.FormatPDF, Stage: "open", Err: errors.New("malformed xref")}},
			wantPrefix: "Error processing PDF: ",
		},
		{
			name:       "ocr error",
			file:       extractor.File{Name: "scan.png", MediaType: extractor.MediaTypePNG},
			ext:        &fakeExtractor{err: &extractor.Error{Format: extractor.FormatImage, Stage: "recognize", Err: errors.New("quota")}},
			wantPrefix: "Error processing file: ",
		},
		{
			name:       "parser panic",
			file:       extractor.File{Name: "cv.docx", MediaType: extractor.MediaTypeDOCX},
			ext:        &fakeExtractor{panics: true},
			wantPrefix: "Error processing file: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()

			_, err := newExtraction(f, tt.ext).Upload(ctx, "u1", tt.file)

			var extractErr *extractor.Error
			require.ErrorAs(t, err, &extractErr)
			assert.Contains(t, err.Error(), tt.wantPrefix)

			snap, _ := f.session.State(ctx, "u1")
			assert.False(t, snap.Processing)
			assert.Nil(t, snap.Document)
			assert.Equal(t, err.Error(), snap.ExtractionError)
		})
	}
}

func TestExtractionService_LatestUploadWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	slow := &fakeExtractor{
		doc:   &extractor.Document{Format: extractor.FormatPDF, Text: "old resume"},
		block: make(chan struct{}),
	}
	fast := &fakeExtractor{doc: &extractor.Document{Format: extractor.FormatText, Text: "new resume"}}

	type outcome struct {
		superseded bool
		err        error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := newExtraction(f, slow).Upload(ctx, "u1", pdfUpload("old.pdf"))
		if err != nil {
			done <- outcome{err: err}
			return
		}
		done <- outcome{superseded: res.Superseded}
	}()

	require.Eventually(t, func() bool {
		return f.session.Ensure(ctx, "u1").Processing()
	}, time.Second, 5*time.Millisecond)

	res, err := newExtraction(f, fast).Upload(ctx, "u1", extractor.File{Name: "new.txt", MediaType: extractor.MediaTypeText})
	require.NoError(t, err)
	assert.False(t, res.Superseded)

	close(slow.block)
	first := <-done
	require.NoError(t, first.err)
	assert.True(t, first.superseded)

	doc := f.session.Ensure(ctx, "u1").Document()
	require.NotNil(t, doc)
	assert.Equal(t, "new resume", doc.Text)
	assert.False(t, f.session.Ensure(ctx, "u1").Processing())
}
