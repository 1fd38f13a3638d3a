package pageedit

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"

	"papernotes/internal/util"
)

// makePDF assembles a minimal n-page PDF where page i gets a distinct
// MediaBox width, so tests can tell which pages survived a removal.
func makePDF(t *testing.T, widths []float64) []byte {
	t.Helper()
	var buf bytes.Buffer
	offsets := make([]int, 0, len(widths)+2)
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, len(widths))
	for i := range widths {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(widths)))
	for i, w := range widths {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f 792] /Resources << >> >>\nendobj\n",
			i+3, w))
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefPos)
	return buf.Bytes()
}

func pageWidths(t *testing.T, pdf []byte) []float64 {
	t.Helper()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	require.NoError(t, err)
	dims, err := pdfCtx.PageDims()
	require.NoError(t, err)
	out := make([]float64, 0, len(dims))
	for _, d := range dims {
		out = append(out, d.Width)
	}
	return out
}

func TestRemovePagesAscending(t *testing.T) {
	pdf := makePDF(t, []float64{100, 200, 300, 400, 500})

	out, err := RemovePages(pdf, []int{2, 5})
	require.NoError(t, err)

	count, err := PageCount(out)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Equal(t, []float64{100, 300, 400}, pageWidths(t, out))
}

func TestRemovePagesEmptyListPassesThrough(t *testing.T) {
	pdf := makePDF(t, []float64{100, 200})

	out, err := RemovePages(pdf, nil)
	require.NoError(t, err)
	require.Equal(t, pdf, out)
}

func TestRemovePagesOutOfRange(t *testing.T) {
	pdf := makePDF(t, []float64{100, 200, 300})

	_, err := RemovePages(pdf, []int{4})
	require.ErrorIs(t, err, util.ErrInvalidPage)
}

// The offset subtraction assumes an ascending page list. A descending list
// is applied against the shifted document and removes different pages; this
// pins the known sensitivity rather than fixing it.
func TestRemovePagesDescendingListIsOrderSensitive(t *testing.T) {
	pdf := makePDF(t, []float64{100, 200, 300, 400, 500})

	ascending, err := RemovePages(pdf, []int{2, 5})
	require.NoError(t, err)
	descending, err := RemovePages(pdf, []int{5, 2})
	require.NoError(t, err)

	require.Equal(t, []float64{100, 300, 400}, pageWidths(t, ascending))
	require.Equal(t, []float64{200, 300, 400}, pageWidths(t, descending))
}
