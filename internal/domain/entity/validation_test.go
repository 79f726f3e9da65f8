package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "empty defaults to first page", raw: "", want: 0},
		{name: "blank defaults to first page", raw: "   ", want: 0},
		{name: "zero", raw: "0", want: 0},
		{name: "positive", raw: "3", want: 3},
		{name: "surrounding spaces", raw: " 2 ", want: 2},
		{name: "negative", raw: "-1", wantErr: true},
		{name: "not a number", raw: "two", wantErr: true},
		{name: "float", raw: "1.5", wantErr: true},
		{name: "too long", raw: "1234567890", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePage(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "page", vErr.Field)
				assert.Equal(t, PageMessage, vErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
