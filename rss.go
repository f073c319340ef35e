package drawgallery

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/drawgallery/gallery"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description,omitempty"`
	PubDate     string        `xml:"pubDate,omitempty"`
	GUID        string        `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

func (a *App) handleFeed(c echo.Context) error {
	items, err := a.Gallery.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build feed").SetInternal(err)
	}
	return a.renderRSS(c, items)
}

func (a *App) renderRSS(c echo.Context, images []gallery.Item) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(images))
	for _, img := range images {
		imgURL := BuildURL(base, "img", img.Filename)
		item := rssItem{
			Title:     img.Title,
			Link:      imgURL,
			GUID:      imgURL,
			Enclosure: &rssEnclosure{URL: imgURL, Type: "image/png"},
		}
		if img.Price != nil {
			item.Description = *img.Price
		}
		if t, ok := gallery.CreatedAt(img.Filename); ok {
			item.PubDate = t.UTC().Format(time.RFC1123Z)
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Name + " drawings",
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
