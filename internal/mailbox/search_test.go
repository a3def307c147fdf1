package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/yamashin01/invoiceflow/internal/model"
)

func TestBuildQuery(t *testing.T) {
	window := model.Month(2024, time.June, time.UTC)

	tests := []struct {
		name   string
		sender model.SenderFilter
		want   string
	}{
		{
			name:   "full filter",
			sender: model.SenderFilter{Email: "billing@acme.example", Keyword: "請求書"},
			want:   "from:billing@acme.example subject:請求書 after:2024/06/01 before:2024/07/01 has:attachment",
		},
		{
			name:   "no keyword",
			sender: model.SenderFilter{Email: "invoices@vendor.example"},
			want:   "from:invoices@vendor.example after:2024/06/01 before:2024/07/01 has:attachment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.sender, window))
		})
	}
}

func TestBuildQueryYearBoundary(t *testing.T) {
	window := model.PreviousMonth(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC))
	got := BuildQuery(model.SenderFilter{Email: "a@b.example"}, window)
	assert.Contains(t, got, "after:2023/12/01")
	assert.Contains(t, got, "before:2024/01/01")
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := gmail.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return &Client{service: svc}
}

func metadataMessage(id, subject string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"internalDate": "1718445600000",
		"payload": {"headers": [
			{"name": "Subject", "value": %q},
			{"name": "From", "value": "billing@acme.example"}
		]}
	}`, id, subject)
}

func TestSearchFollowsPagination(t *testing.T) {
	var pageTokens []string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/users/me/messages"):
			token := r.URL.Query().Get("pageToken")
			pageTokens = append(pageTokens, token)
			if token == "" {
				fmt.Fprint(w, `{"messages": [{"id": "m1"}, {"id": "m2"}], "nextPageToken": "page2"}`)
			} else {
				fmt.Fprint(w, `{"messages": [{"id": "m3"}]}`)
			}
		case strings.Contains(r.URL.Path, "/users/me/messages/"):
			id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
			fmt.Fprint(w, metadataMessage(id, "請求書 "+id))
		default:
			http.NotFound(w, r)
		}
	}))

	window := model.Month(2024, time.June, time.UTC)
	messages, err := client.Search(context.Background(), model.SenderFilter{Email: "billing@acme.example"}, window)
	require.NoError(t, err)

	// Every page is consumed, not just the first.
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"", "page2"}, pageTokens)
	assert.Equal(t, "m3", messages[2].ID)
	assert.Equal(t, "請求書 m1", messages[0].Subject)
	assert.Equal(t, "billing@acme.example", messages[0].From)
	assert.Equal(t, time.UnixMilli(1718445600000), messages[0].Received)

	// Search returns header-only candidates; no attachment bytes yet.
	for _, msg := range messages {
		assert.Empty(t, msg.Attachments)
	}
}

func TestAttachmentsFetchesMessageBody(t *testing.T) {
	pdfBytes := []byte("%PDF-1.7 test body")
	encoded := base64.URLEncoding.EncodeToString(pdfBytes)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/attachments/att-1"):
			fmt.Fprintf(w, `{"data": %q}`, encoded)
		case strings.HasSuffix(r.URL.Path, "/users/me/messages/m1"):
			fmt.Fprint(w, `{
				"id": "m1",
				"payload": {
					"mimeType": "multipart/mixed",
					"parts": [
						{"mimeType": "text/plain", "body": {"data": ""}},
						{
							"filename": "invoice.pdf",
							"mimeType": "application/pdf",
							"body": {"attachmentId": "att-1"}
						}
					]
				}
			}`)
		default:
			http.NotFound(w, r)
		}
	}))

	attachments, err := client.Attachments(context.Background(), "m1")
	require.NoError(t, err)

	require.Len(t, attachments, 1)
	assert.Equal(t, "invoice.pdf", attachments[0].Filename)
	assert.Equal(t, "application/pdf", attachments[0].ContentType)
	assert.Equal(t, pdfBytes, attachments[0].Data)
}
