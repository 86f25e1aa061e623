// Package export renders a patient summary as a minimal single-page PDF.
// The output is a hand-assembled PDF 1.4 byte stream with one Helvetica text
// block; it is intentionally bare-bones, not a general PDF writer.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// PatientInfo is the patient data rendered into the report header.
type PatientInfo struct {
	Name    string
	Age     int
	Gender  string
	Email   string
	Phone   string
	Domains []string
}

// NoteInfo is a single note line in the report.
type NoteInfo struct {
	Domain    string
	Text      string
	CreatedAt time.Time
}

const noteLineLimit = 50

// PatientPDF builds the report for one patient and their notes.
func PatientPDF(p PatientInfo, notes []NoteInfo) []byte {
	var text strings.Builder
	text.WriteString("BT\n/F1 14 Tf\n50 700 Td\n")
	fmt.Fprintf(&text, "(%s) Tj\n", escape(p.Name))
	text.WriteString("0 -30 Td\n/F1 10 Tf\n")
	fmt.Fprintf(&text, "(Age: %d) Tj\n", p.Age)
	fmt.Fprintf(&text, "0 -20 Td\n(Gender: %s) Tj\n", escape(p.Gender))
	if p.Email != "" {
		fmt.Fprintf(&text, "0 -20 Td\n(Email: %s) Tj\n", escape(p.Email))
	}
	if p.Phone != "" {
		fmt.Fprintf(&text, "0 -20 Td\n(Phone: %s) Tj\n", escape(p.Phone))
	}
	if len(p.Domains) > 0 {
		fmt.Fprintf(&text, "0 -20 Td\n(Domains: %s) Tj\n", escape(strings.Join(p.Domains, ", ")))
	}
	text.WriteString("0 -40 Td\n/F1 12 Tf\n(Notes:) Tj\n")
	for _, n := range notes {
		line := n.Text
		if len(line) > noteLineLimit {
			line = line[:noteLineLimit]
		}
		fmt.Fprintf(&text, "0 -20 Td\n(%s) Tj\n", escape(line))
	}
	text.WriteString("ET")
	stream := text.String()

	var buf bytes.Buffer
	var offsets [6]int

	write := func(obj int, body string) {
		offsets[obj] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", obj, body)
	}

	buf.WriteString("%PDF-1.4\n")
	write(1, "<< /Type /Catalog /Pages 2 0 R >>")
	write(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	write(3, "<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 4 0 R >> >> /MediaBox [0 0 612 792] /Contents 5 0 R >>")
	write(4, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	write(5, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))

	xref := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for obj := 1; obj <= 5; obj++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[obj])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// FileName derives the attachment name from a patient name.
func FileName(patientName string) string {
	return fmt.Sprintf("patient-%s.pdf", strings.Join(strings.Fields(patientName), "-"))
}

// escape protects the PDF string delimiters.
func escape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)", "\n", " ", "\r", " ")
	return r.Replace(s)
}
