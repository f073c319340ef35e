package drawgallery

import "github.com/eringen/drawgallery/gallery"

// saveRequest is the body of POST /save. Image is a data URL.
type saveRequest struct {
	Name     string            `json:"name"`
	Image    string            `json:"image"`
	Price    gallery.PriceText `json:"price"`
	Filename string            `json:"filename"`
}

// messageResponse is the body of every delete response and every API error.
type messageResponse struct {
	Message string `json:"message"`
}
