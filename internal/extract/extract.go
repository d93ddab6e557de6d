package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"smart-ats/internal/shared/apperr"
)

// Stage prefixes every error returned from this package.
const Stage = "failed to extract text from PDF"

const (
	msgNoFile  = "No file uploaded."
	msgNoPages = "PDF file is empty or has no readable pages."
	msgNoText  = "No text found in the PDF file."
)

// Text extracts the plain text of every page of a PDF held in memory. Pages
// that yield no text are skipped; the rest are joined with a single space in
// page order. A nil document is rejected as not uploaded.
func Text(ctx context.Context, data []byte) (string, error) {
	if data == nil {
		return "", apperr.Wrap(Stage, apperr.ErrExtraction, apperr.New(apperr.ErrValidation, msgNoFile))
	}
	if err := ctx.Err(); err != nil {
		return "", apperr.Wrap(Stage, apperr.ErrExtraction, err)
	}

	pages, err := pageTexts(data)
	if err != nil {
		return "", apperr.Wrap(Stage, apperr.ErrExtraction, err)
	}
	return joinPages(pages)
}

// TextFromReader reads the whole document from r and extracts it with Text.
func TextFromReader(ctx context.Context, r io.Reader) (string, error) {
	if r == nil {
		return Text(ctx, nil)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", apperr.Wrap(Stage, apperr.ErrExtraction, fmt.Errorf("read: %w", err))
	}
	if raw == nil {
		raw = []byte{}
	}
	return Text(ctx, raw)
}

func pageTexts(data []byte) (pages []string, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, apperr.New(apperr.ErrExtraction, msgNoPages)
	}

	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func joinPages(pages []string) (string, error) {
	var buf bytes.Buffer
	for _, text := range pages {
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(text)
	}
	if buf.Len() == 0 {
		return "", apperr.Wrap(Stage, apperr.ErrExtraction, apperr.New(apperr.ErrValidation, msgNoText))
	}
	return buf.String(), nil
}
