package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
)

// =============================================================================
// Document Loading API
// =============================================================================

// Parse decodes and validates a JSON document.
//
// Decode failures and schema violations return an ErrCodeDocumentParse error.
// A document with zero functions returns ErrCodeEmptyDocument.
func Parse(data []byte) (*CrateDocument, error) {
	return readFrom(bytes.NewReader(data))
}

// Read decodes and validates a JSON document from an io.Reader.
func Read(r io.Reader) (*CrateDocument, error) {
	return readFrom(r)
}

// ReadFile reads, decodes and validates a JSON document file.
func ReadFile(path string) (*CrateDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Marshal encodes the document as indented JSON.
func (d *CrateDocument) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the document as indented JSON to w.
func (d *CrateDocument) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks every structural invariant consumers rely on.
//
// Bounds are checked once here so that layout and navigation never need to
// re-check them.
func (d *CrateDocument) Validate() error {
	if len(d.Functions) == 0 {
		return errors.New(errors.ErrCodeEmptyDocument, "document %q contains no functions", d.Name)
	}
	for i := range d.Functions {
		if err := d.Functions[i].Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeDocumentParse, err, "function %d (%s)", i, d.Functions[i].Name)
		}
	}
	return nil
}

// Validate checks a single function's block ids, entry block and every
// block reference.
func (f *FunctionDoc) Validate() error {
	n := len(f.Blocks)
	if n > 0 && (f.EntryBlock < 0 || f.EntryBlock >= n) {
		return fmt.Errorf("entry block %d out of range [0, %d)", f.EntryBlock, n)
	}
	for i, b := range f.Blocks {
		if b.ID != i {
			return fmt.Errorf("block at index %d has id %d", i, b.ID)
		}
		for j, e := range b.Terminator.Edges {
			if e.Target < 0 || e.Target >= n {
				return fmt.Errorf("bb%d edge %d targets bb%d, out of range [0, %d)", i, j, e.Target, n)
			}
		}
		for _, p := range b.Predecessors {
			if p < 0 || p >= n {
				return fmt.Errorf("bb%d predecessor bb%d out of range [0, %d)", i, p, n)
			}
		}
	}
	for _, l := range f.Locals {
		for _, a := range l.Assignments {
			if a.BlockID < 0 || a.BlockID >= n {
				return fmt.Errorf("local %s assigned in bb%d, out of range [0, %d)", l.Name, a.BlockID, n)
			}
		}
	}
	return nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func readFrom(r io.Reader) (*CrateDocument, error) {
	var doc CrateDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentParse, err, "decode document")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeDocumentParse, "unexpected data after document at offset %d", dec.InputOffset())
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
