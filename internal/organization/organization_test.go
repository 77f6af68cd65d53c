package organization_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/karbonsync/internal/organization"
)

func TestRead(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    []organization.Entry
		wantErr string
	}

	tests := []testCase{
		{
			name:  "Basic",
			input: "Key,Name\nK1,Acme\nK2,Beta LLC\n",
			want:  []organization.Entry{{Key: "K1", Name: "Acme"}, {Key: "K2", Name: "Beta LLC"}},
		},
		{
			name:  "ColumnsAnyOrder",
			input: "Name,Notes,Key\nAcme,x,K1\n",
			want:  []organization.Entry{{Key: "K1", Name: "Acme"}},
		},
		{
			name:  "BlankKeySkipped",
			input: "Key,Name\n,Nobody\n  ,Spaces\nK1,Acme\n",
			want:  []organization.Entry{{Key: "K1", Name: "Acme"}},
		},
		{
			name:  "UTF8BOM",
			input: "\xEF\xBB\xBFKey,Name\nK1,Caf\xC3\xA9\n",
			want:  []organization.Entry{{Key: "K1", Name: "Café"}},
		},
		{
			name:  "Windows1252",
			input: "Key,Name\nK1,Caf\xE9\n",
			want:  []organization.Entry{{Key: "K1", Name: "Café"}},
		},
		{name: "HeaderOnly", input: "Key,Name\n"},
		{name: "MissingName", input: "Key,Title\nK1,x\n", wantErr: `"Name"`},
		{name: "Empty", input: "", wantErr: "missing header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := organization.Read(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organizations.csv")
	require.NoError(t, os.WriteFile(path, []byte("Key,Name\nK1,Acme\n"), 0o644))

	got, err := organization.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []organization.Entry{{Key: "K1", Name: "Acme"}}, got)

	_, err = organization.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
