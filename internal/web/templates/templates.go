// Package templates holds the HTML components of the sticker upload page.
//
// Components are written in .templ files; the *_templ.go files next to them
// are produced by `templ generate` and must not be edited by hand.
package templates

//go:generate templ generate

import (
	"fmt"

	"github.com/JonMunkholm/stickers/internal/core"
)

// IndexData is what the upload page needs to render.
type IndexData struct {
	Templates       []core.GridTemplate
	DefaultTemplate string
	MaxNameLength   int
	MinNameLength   int
	MaxNameLimit    int
	MaxFileSizeMB   int64
}

// optionLabel is the text of a sheet template choice, e.g. "3x8 (24 на листе)".
func optionLabel(t core.GridTemplate) string {
	return fmt.Sprintf("%s (%d на листе)", t.Name, t.Capacity())
}
