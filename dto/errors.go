package dto

import "fmt"

// DocumentDefect classifies fatal document problems. A defect rejects
// the current request; it is never retried automatically.
type DocumentDefect string

const (
	DefectFileNotFound DocumentDefect = "file_not_found"
	DefectEmptyFile    DocumentDefect = "empty_file"
	DefectBadHeader    DocumentDefect = "bad_header"
	DefectZeroPages    DocumentDefect = "zero_pages"
)

// DocumentError carries the defect taxonomy to the caller.
type DocumentError struct {
	Defect   DocumentDefect
	Filename string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document rejected (%s): %s", e.Defect, e.Filename)
}

// NewDocumentError builds a typed rejection for a document.
func NewDocumentError(defect DocumentDefect, filename string) *DocumentError {
	return &DocumentError{Defect: defect, Filename: filename}
}

// ErrorResponse is the HTTP error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
