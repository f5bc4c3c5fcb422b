package osdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Kind
		wantErr bool
	}{
		{
			name:  "master data kind",
			input: "osdu:wks:master-data--Basin:*",
			want: &Kind{
				Namespace: "osdu",
				Domain:    "wks",
				Category:  "master-data",
				Entity:    "Basin",
				Version:   "*",
			},
		},
		{
			name:  "versioned work product kind",
			input: "osdu:wks:work-product--WorkProduct:1.0.0",
			want: &Kind{
				Namespace: "osdu",
				Domain:    "wks",
				Category:  "work-product",
				Entity:    "WorkProduct",
				Version:   "1.0.0",
			},
		},
		{
			name:    "missing entity separator",
			input:   "osdu:wks:master-data:*",
			wantErr: true,
		},
		{
			name:    "too few segments",
			input:   "osdu:wks",
			wantErr: true,
		},
		{
			name:    "empty entity",
			input:   "osdu:wks:master-data--:*",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntityName(t *testing.T) {
	entity, err := EntityName("osdu:wks:master-data--Basin:*")
	require.NoError(t, err)
	assert.Equal(t, "Basin", entity)

	entity, err = EntityName("osdu:ddms-wellbore:master-data--Wellbore:1.*.*")
	require.NoError(t, err)
	assert.Equal(t, "Wellbore", entity)

	_, err = EntityName("no-separator")
	assert.ErrorIs(t, err, ErrMalformedKind)

	_, err = EntityName("osdu:wks:master-data--:*")
	assert.ErrorIs(t, err, ErrMalformedKind)
}
