package templates

import (
	"embed"
	"io/fs"
	"sort"

	"github.com/printerm/printerm/pkg/errors"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinTemplates returns the template set bundled with printerm,
// sorted by name.
func LoadBuiltinTemplates() ([]*Template, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "Cannot read builtin templates")
	}

	templates := make([]*Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal,
				"Cannot read builtin template %s", entry.Name())
		}
		tmpl, err := parseTemplate(data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err),
				"Builtin template %s is invalid", entry.Name())
		}
		tmpl.Source = SourceBuiltin
		templates = append(templates, tmpl)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}
