package definition

import (
	"embed"
	"io/fs"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

// BuiltinFS exposes the bundled definitions of the account forms.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		return embeddedForms
	}
	return sub
}

// Builtin loads the bundled definitions.
func Builtin() (*Store, error) {
	return LoadFS(BuiltinFS())
}
