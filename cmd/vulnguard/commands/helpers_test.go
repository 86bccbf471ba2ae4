package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

func TestParseTagFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     []string
		want    []vulnguard.Tag
		wantErr bool
	}{
		{
			name: "valid tags",
			raw:  []string{"team=web", "env=prod"},
			want: []vulnguard.Tag{{Key: "team", Value: "web"}, {Key: "env", Value: "prod"}},
		},
		{
			name: "value containing an equals sign",
			raw:  []string{"expr=a=b"},
			want: []vulnguard.Tag{{Key: "expr", Value: "a=b"}},
		},
		{name: "none", raw: nil, want: []vulnguard.Tag{}},
		{name: "missing separator", raw: []string{"team"}, wantErr: true},
		{name: "empty key", raw: []string{"=web"}, wantErr: true},
		{name: "empty value", raw: []string{"team="}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tags, err := parseTagFlags(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTagFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, tags)
		})
	}
}
