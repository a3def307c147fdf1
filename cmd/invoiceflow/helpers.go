package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yamashin01/invoiceflow/internal/googleauth"
)

// googleHTTPClient builds the authenticated client shared by the Gmail,
// Drive, and Sheets services.
func googleHTTPClient(ctx context.Context, cfg googleauth.Config) (*http.Client, error) {
	client, err := googleauth.NewHTTPClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Google: %w", err)
	}
	return client, nil
}
