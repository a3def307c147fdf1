package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentIsPDF(t *testing.T) {
	tests := []struct {
		name string
		att  Attachment
		want bool
	}{
		{"pdf content type", Attachment{ContentType: "application/pdf", Filename: "bill"}, true},
		{"pdf extension only", Attachment{ContentType: "application/octet-stream", Filename: "invoice.PDF"}, true},
		{"plain image", Attachment{ContentType: "image/png", Filename: "logo.png"}, false},
		{"no hints", Attachment{ContentType: "text/plain", Filename: "readme.txt"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.att.IsPDF())
		})
	}
}

func TestPDFAttachmentsPreservesOrder(t *testing.T) {
	msg := CandidateMessage{
		Attachments: []Attachment{
			{Filename: "cover.png", ContentType: "image/png"},
			{Filename: "first.pdf", ContentType: "application/pdf"},
			{Filename: "second.pdf", ContentType: "application/pdf"},
		},
	}

	pdfs := msg.PDFAttachments()
	assert.Len(t, pdfs, 2)
	assert.Equal(t, "first.pdf", pdfs[0].Filename)
	assert.Equal(t, "second.pdf", pdfs[1].Filename)
}
