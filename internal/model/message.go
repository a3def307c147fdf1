package model

import (
	"strings"
	"time"
)

// CandidateMessage is a mailbox message matched by a sender filter within
// the processing window. Read-only to the pipeline.
type CandidateMessage struct {
	Received    time.Time
	ID          string
	Subject     string
	From        string
	Attachments []Attachment
}

// Attachment is a single attachment blob from a candidate message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IsPDF reports whether the attachment looks like a PDF, by content type
// or by filename extension.
func (a Attachment) IsPDF() bool {
	if a.ContentType == "application/pdf" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(a.Filename), ".pdf")
}

// PDFAttachments returns the message's PDF attachments in listing order.
func (m CandidateMessage) PDFAttachments() []Attachment {
	var pdfs []Attachment
	for _, att := range m.Attachments {
		if att.IsPDF() {
			pdfs = append(pdfs, att)
		}
	}
	return pdfs
}
