// Package assets embeds the SQL migrations and the HTML page template.
package assets

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/robalobadob/hangman/internal/game"
)

//go:embed sql templates
var FS embed.FS

// Migrations returns the migration directory for a SQL dialect
// ("sqlite" or "postgres").
func Migrations(dialect string) (fs.FS, error) {
	sub, err := fs.Sub(FS, "sql/"+dialect)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("no migrations for dialect %q: %w", dialect, err)
	}
	return sub, nil
}

// IndexTemplate parses the game page.
func IndexTemplate() (*template.Template, error) {
	return template.New("index.html").Funcs(template.FuncMap{
		"spaced": game.Spaced,
		"inc":    func(i int) int { return i + 1 },
	}).ParseFS(FS, "templates/index.html")
}
