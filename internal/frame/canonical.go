package frame

import (
	"fmt"

	"github.com/roach88/updseq/internal/canon"
)

// Canonical returns f as it reads back from storage together with its
// document. Strings are NFC normalized on the way, so the returned frame can
// differ from f in text but classifies identically to any later decode of doc.
func Canonical(f Frame) (Frame, Doc, error) {
	encoded, err := Encode(f)
	if err != nil {
		return Frame{}, Doc{}, err
	}

	var doc Doc
	if err := canon.Canonicalize(encoded, &doc); err != nil {
		return Frame{}, Doc{}, fmt.Errorf("canonicalize frame: %w", err)
	}

	stored, err := Decode(doc)
	if err != nil {
		return Frame{}, Doc{}, err
	}
	return stored, doc, nil
}
