// Package drive stores invoice PDFs in a Google Drive folder.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/yamashin01/invoiceflow/internal/common"
)

// Archive implements service.Archive on top of the Drive API. Every stored
// PDF lands in one configured folder.
type Archive struct {
	service  *drive.Service
	folderID string
}

// NewArchive creates a Drive archive writer. folderID must name an
// existing folder; with it unset the run cannot proceed.
func NewArchive(ctx context.Context, client *http.Client, folderID string) (*Archive, error) {
	if folderID == "" {
		return nil, fmt.Errorf("%w: drive folder id is not set", common.ErrConfigurationMissing)
	}

	service, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}

	return &Archive{service: service, folderID: folderID}, nil
}

// Store uploads the PDF under the given name and returns a durable link.
func (a *Archive) Store(ctx context.Context, data []byte, filename string) (string, error) {
	meta := &drive.File{
		Name:     filename,
		MimeType: "application/pdf",
		Parents:  []string{a.folderID},
	}

	created, err := a.service.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	slog.Info("Stored PDF in Drive", "filename", filename, "file_id", created.Id)
	return created.WebViewLink, nil
}
