package pageedit

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"papernotes/internal/util"
)

// RemovePages deletes the given 1-based pages from a PDF byte buffer and
// returns the edited document. Pages are removed one at a time in the order
// given; every removal shifts the pages behind it, so the running removal
// count is subtracted from each requested number before it is applied.
// Callers therefore get the intended result only for ascending lists without
// duplicates - an unordered list is applied against the shifted document,
// not rejected. An empty list is a pass-through.
func RemovePages(pdf []byte, pages []int) ([]byte, error) {
	if len(pages) == 0 {
		return pdf, nil
	}

	conf := model.NewDefaultConfiguration()
	out := pdf
	removed := 0
	for _, pageNum := range pages {
		target := pageNum - removed

		pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(out), conf)
		if err != nil {
			return nil, fmt.Errorf("read pdf: %w", err)
		}
		if target < 1 || target > pdfCtx.PageCount {
			return nil, fmt.Errorf("%w: page %d (shifted %d) of %d", util.ErrInvalidPage, pageNum, target, pdfCtx.PageCount)
		}

		var buf bytes.Buffer
		if err := api.RemovePages(bytes.NewReader(out), &buf, []string{strconv.Itoa(target)}, conf); err != nil {
			return nil, fmt.Errorf("remove page %d: %w", target, err)
		}
		out = buf.Bytes()
		removed++
	}
	return out, nil
}

// PageCount reports the number of pages in a PDF byte buffer.
func PageCount(pdf []byte) (int, error) {
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return pdfCtx.PageCount, nil
}
