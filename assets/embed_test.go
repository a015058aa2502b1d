package assets

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	for _, d := range []string{"sqlite", "postgres"} {
		sub, err := Migrations(d)
		require.NoError(t, err, d)
		files, err := fs.Glob(sub, "*.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, files, d)
	}

	_, err := Migrations("oracle")
	assert.Error(t, err)
}

func TestIndexTemplateParses(t *testing.T) {
	tpl, err := IndexTemplate()
	require.NoError(t, err)
	assert.NotNil(t, tpl.Lookup("index.html"))
}
