package service

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

// DocumentReader turns raw statement bytes into a page-indexed
// document. The engine never decodes document formats beyond header
// and page-count validation plus the embedded text layer.
type DocumentReader interface {
	Read(filename string, raw []byte) (*dto.Document, error)
}

type pdfReader struct{}

func NewPDFReader() DocumentReader {
	return &pdfReader{}
}

// Read validates the bytes and extracts per-page text. Defects map to
// the document-error taxonomy so the orchestrator can reject with a
// specific cause.
func (r *pdfReader) Read(filename string, raw []byte) (*dto.Document, error) {
	if len(raw) == 0 {
		return nil, dto.NewDocumentError(dto.DefectEmptyFile, filename)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		return nil, dto.NewDocumentError(dto.DefectBadHeader, filename)
	}

	pageCount, err := api.PageCount(bytes.NewReader(raw), model.NewDefaultConfiguration())
	if err != nil {
		return nil, dto.NewDocumentError(dto.DefectBadHeader, filename)
	}
	if pageCount == 0 {
		return nil, dto.NewDocumentError(dto.DefectZeroPages, filename)
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, dto.NewDocumentError(dto.DefectBadHeader, filename)
	}

	pages := make([]string, 0, pageCount)
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		var text strings.Builder
		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					text.WriteByte(' ')
				}
				text.WriteString(word.S)
			}
			text.WriteByte('\n')
		}
		pages = append(pages, text.String())
	}

	return &dto.Document{Filename: filename, Raw: raw, Pages: pages}, nil
}
