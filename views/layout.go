// Package views renders the HTML pages of the gallery as templ components.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// page wraps body in the shared document shell.
func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" href="/public/style.css">`+
			`<link rel="alternate" type="application/rss+xml" href="/feed.xml" title="`+templ.EscapeString(title)+`">`+
			`</head>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</html>`)
		return err
	})
}
