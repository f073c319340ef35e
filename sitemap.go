package drawgallery

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/drawgallery/gallery"
)

type sitemapURLSet struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSImage string       `xml:"xmlns:image,attr"`
	URLs       []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string         `xml:"loc"`
	LastMod string         `xml:"lastmod,omitempty"`
	Images  []sitemapImage `xml:"image:image"`
}

type sitemapImage struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	items, err := a.Gallery.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build sitemap").SetInternal(err)
	}
	return a.renderSitemap(c, items)
}

// renderSitemap lists the editor page with every drawing attached as an
// image entry. lastmod is the newest drawing's creation date.
func (a *App) renderSitemap(c echo.Context, items []gallery.Item) error {
	base := a.Config.URL
	home := sitemapURL{Loc: strings.TrimSuffix(BuildURL(base), "/") + "/"}
	var newest time.Time
	for _, it := range items {
		home.Images = append(home.Images, sitemapImage{
			Loc:   BuildURL(base, "img", it.Filename),
			Title: it.Title,
		})
		if t, ok := gallery.CreatedAt(it.Filename); ok && t.After(newest) {
			newest = t
		}
	}
	if !newest.IsZero() {
		home.LastMod = newest.UTC().Format("2006-01-02")
	}
	sitemap := sitemapURLSet{
		XMLNS:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XMLNSImage: "http://www.google.com/schemas/sitemap-image/1.1",
		URLs:       []sitemapURL{home},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
