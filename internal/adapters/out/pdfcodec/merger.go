// Package pdfcodec reads and concatenates PDF documents with pdfcpu.
package pdfcodec

import (
	"bytes"
	"io"

	"fulfillment/internal/pkg/errs"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type Merger struct {
	conf *model.Configuration
}

// NewMerger uses relaxed validation; design exports from third-party editors
// are frequently not strictly conformant.
func NewMerger() *Merger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Merger{conf: conf}
}

func (m *Merger) PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), m.conf)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("pdf", err)
	}
	return n, nil
}

// Merge appends the pages of docs in order. A single document is returned
// unchanged.
func (m *Merger) Merge(docs [][]byte) ([]byte, error) {
	switch len(docs) {
	case 0:
		return nil, errs.NewValueIsRequiredError("documents")
	case 1:
		return bytes.Clone(docs[0]), nil
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, m.conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
