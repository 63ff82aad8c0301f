package backup

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophvault/internal/models"
)

func TestExport(t *testing.T) {
	records := []models.Credential{
		{ID: 1, Website: "example.com", Username: "alice", Password: "Y2lwaGVy"},
		{ID: 2, Website: "example.com", Username: "bob", Password: "b3RoZXI="},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, records))
	assert.Equal(t, "example.com alice Y2lwaGVy\nexample.com bob b3RoZXI=\n", buf.String())
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestExport_Unexportable(t *testing.T) {
	tests := []struct {
		name string
		rec  models.Credential
	}{
		{name: "space in website", rec: models.Credential{Website: "my site", Username: "u", Password: "p"}},
		{name: "space in username", rec: models.Credential{Website: "w", Username: "john doe", Password: "p"}},
		{name: "empty username", rec: models.Credential{Website: "w", Username: "", Password: "p"}},
		{name: "empty password", rec: models.Credential{Website: "w", Username: "u", Password: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Export(&buf, []models.Credential{tt.rec})
			assert.ErrorIs(t, err, ErrUnexportable)
		})
	}
}

func TestImport(t *testing.T) {
	blob := "example.com alice Y2lwaGVy\n  spaced.org\tbob   b3RoZXI=  \nlast.net carol Zm9v"

	records, err := Import(strings.NewReader(blob))
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{
		{Website: "example.com", Username: "alice", Password: "Y2lwaGVy"},
		{Website: "spaced.org", Username: "bob", Password: "b3RoZXI="},
		{Website: "last.net", Username: "carol", Password: "Zm9v"},
	}, records)
}

func TestImport_Empty(t *testing.T) {
	records, err := Import(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestImport_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		blob       string
		wantLine   int
		wantFields int
	}{
		{name: "space in website", blob: "my site alice cipher\n", wantLine: 1, wantFields: 4},
		{name: "missing password", blob: "ok.com a c\nbad.com alice\n", wantLine: 2, wantFields: 2},
		{name: "blank line", blob: "ok.com a c\n\nok.org b d\n", wantLine: 2, wantFields: 0},
		{name: "too many", blob: "a b c d e\n", wantLine: 1, wantFields: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Import(strings.NewReader(tt.blob))
			require.ErrorIs(t, err, ErrMalformedBackup)
			assert.Nil(t, records, "import aborts without partial results")

			var lineErr *MalformedLineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, tt.wantLine, lineErr.Line)
			assert.Equal(t, tt.wantFields, lineErr.Fields)
			assert.Contains(t, err.Error(), "malformed backup line")
		})
	}
}

func TestRoundTrip(t *testing.T) {
	records := []models.Credential{
		{Website: "example.com", Username: "alice", Password: "AAAA"},
		{Website: "example.com", Username: "alice", Password: "AAAA"},
		{Website: "https://x.org/login", Username: "bob@x.org", Password: "+/+/=="},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, records))

	got, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
