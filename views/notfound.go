package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func NotFound(siteName string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<body class="not-found"><main>`+
			`<h1>Not found</h1>`+
			`<p>That page or drawing does not exist.</p>`+
			`<p><a href="/">Back to `+templ.EscapeString(siteName)+`</a></p>`+
			`</main></body>`)
		return err
	})
	return page("Not found · "+siteName, body)
}
