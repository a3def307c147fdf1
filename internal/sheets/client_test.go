package sheets

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestIsMissingRange(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "missing tab",
			err:  &googleapi.Error{Code: http.StatusBadRequest, Message: "Unable to parse range: 請求書一覧!A1"},
			want: true,
		},
		{
			name: "wrapped missing tab",
			err:  fmt.Errorf("append: %w", &googleapi.Error{Code: http.StatusBadRequest, Message: "Unable to parse range: 設定"}),
			want: true,
		},
		{
			name: "other bad request",
			err:  &googleapi.Error{Code: http.StatusBadRequest, Message: "Invalid value at 'data.values'"},
			want: false,
		},
		{
			name: "not found",
			err:  &googleapi.Error{Code: http.StatusNotFound, Message: "Requested entity was not found"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isMissingRange(tt.err))
		})
	}
}
