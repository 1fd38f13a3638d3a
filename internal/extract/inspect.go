package extract

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TitleFromPDF derives a display name from a PDF byte buffer by taking the
// first non-empty text line. Local byte inspection only, no extraction
// service involved; a PDF without extractable text yields "".
func TitleFromPDF(data []byte) string {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	text, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, text); err != nil {
		return ""
	}

	s := bufio.NewScanner(strings.NewReader(buf.String()))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if len(line) > 120 {
			line = line[:120]
		}
		return line
	}
	return ""
}
