package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// EditorPage carries what the editor page needs from the server config.
type EditorPage struct {
	SiteName       string
	ThumbnailWidth int
}

// Swatches are the preset brush colours offered next to the colour picker.
var Swatches = []string{"#000000", "#ffffff", "#e53935", "#fb8c00", "#fdd835", "#43a047", "#1e88e5", "#8e24aa"}

// Editor renders the drawing canvas, its controls and the gallery grid.
// The grid is filled client-side from GET /images.
func Editor(p EditorPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := templ.EscapeString(p.SiteName)
		s := `<body data-thumb-width="` + strconv.Itoa(p.ThumbnailWidth) + `">` +
			`<header><h1>` + name + `</h1></header>` +
			`<main>` +
			`<section class="editor">` +
			`<canvas id="canvas" width="600" height="400"></canvas>` +
			`<div class="tools">` +
			`<input type="color" id="color" value="#000000" aria-label="Brush colour">` +
			`<div class="swatches">`
		for _, c := range Swatches {
			s += `<button type="button" class="swatch" data-color="` + c + `" aria-label="` + c + `"></button>`
		}
		s += `</div>` +
			`<label>Brush <input type="range" id="brush" min="1" max="50" value="5"></label>` +
			`<input type="text" id="name" placeholder="Name" required>` +
			`<input type="text" id="price" placeholder="Price">` +
			`<button type="button" id="save">Save</button>` +
			`<button type="button" id="new">New</button>` +
			`<button type="button" id="clear">Clear</button>` +
			`<span id="status" role="status"></span>` +
			`</div>` +
			`</section>` +
			`<section class="gallery">` +
			`<div class="gallery-head"><h2>Gallery</h2>` +
			`<button type="button" id="delete-all" class="danger">Delete all</button></div>` +
			`<div id="gallery"></div>` +
			`</section>` +
			`</main>` +
			`<script src="/public/app.js" defer></script>` +
			`</body>`
		_, err := io.WriteString(w, s)
		return err
	})
	return page(p.SiteName, body)
}
