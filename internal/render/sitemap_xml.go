package render

import (
	"encoding/xml"

	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
)

// sitemapNamespace is fixed by the sitemap protocol.
const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Priority and change-frequency constants by entry type. Discovery files
// rank highest so agents crawl them first.
const (
	priorityDiscovery  = "1.0"
	priorityOverview   = "0.9"
	priorityIndex      = "0.8"
	priorityCollection = "0.7"
	priorityProduct    = "0.6"
	priorityPage       = "0.5"

	changeDaily   = "daily"
	changeWeekly  = "weekly"
	changeMonthly = "monthly"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML renders the sitemap-protocol XML document. Fixed discovery
// and index URLs come first, then collections, products, and pages in
// source order. lastmod is the entity's update date when present, else
// the generation date.
func (r *Renderer) SitemapXML(products []catalog.Product, collections []catalog.Collection, pages []catalog.Page) (Document, error) {
	today := r.now().UTC().Format("2006-01-02")

	lastMod := func(updatedAt string) string {
		if updatedAt == "" {
			return today
		}
		return dateOnly(updatedAt)
	}

	urls := []sitemapURL{
		{Loc: r.aiURL("llms.txt"), LastMod: today, ChangeFreq: changeDaily, Priority: priorityDiscovery},
		{Loc: r.aiURL("sitemap.md"), LastMod: today, ChangeFreq: changeDaily, Priority: priorityOverview},
		{Loc: r.aiURL("products.md"), LastMod: today, ChangeFreq: changeDaily, Priority: priorityIndex},
		{Loc: r.aiURL("collections.md"), LastMod: today, ChangeFreq: changeDaily, Priority: priorityIndex},
	}

	for _, c := range collections {
		urls = append(urls, sitemapURL{
			Loc:        r.aiURL("collections/" + c.Handle + ".md"),
			LastMod:    lastMod(c.UpdatedAt),
			ChangeFreq: changeWeekly,
			Priority:   priorityCollection,
		})
	}
	for _, p := range products {
		urls = append(urls, sitemapURL{
			Loc:        r.aiURL("products/" + p.Handle + ".md"),
			LastMod:    lastMod(p.UpdatedAt),
			ChangeFreq: changeWeekly,
			Priority:   priorityProduct,
		})
	}
	for _, p := range pages {
		urls = append(urls, sitemapURL{
			Loc:        r.aiURL("pages/" + p.Handle + ".md"),
			LastMod:    lastMod(p.UpdatedAt),
			ChangeFreq: changeMonthly,
			Priority:   priorityPage,
		})
	}

	body, err := xml.MarshalIndent(urlSet{Xmlns: sitemapNamespace, URLs: urls}, "", "  ")
	if err != nil {
		return Document{}, errors.Render(err, "sitemap xml")
	}

	return Document{
		Format: FormatXML,
		Body:   xml.Header + string(body) + "\n",
	}, nil
}
