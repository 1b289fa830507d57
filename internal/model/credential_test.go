package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	valid := uuid.New()

	tests := []struct {
		name    string
		raw     string
		want    uuid.UUID
		wantErr bool
	}{
		{name: "canonical uuid", raw: valid.String(), want: valid},
		{name: "surrounding spaces", raw: "  " + valid.String() + " ", want: valid},
		{name: "empty", raw: "", wantErr: true},
		{name: "object id from another store", raw: "64b7f0c2a1e4b3d2c1f0e9d8", wantErr: true},
		{name: "nil uuid", raw: uuid.Nil.String(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
