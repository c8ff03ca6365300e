package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juneandco/third-audience/internal/catalog"
)

func testShop() catalog.Shop {
	return catalog.Shop{
		Name:        "June & Co",
		Description: "Intimates made to last",
		Domain:      "shop.example.com",
		Currency:    "USD",
		Email:       "hello@example.com",
	}
}

func TestDiscoveryDocument(t *testing.T) {
	r := testRenderer()

	products := []catalog.Product{{Handle: "midi-slip", Title: "Midi Slip"}}
	collections := []catalog.Collection{{Handle: "new-arrivals", Title: "New Arrivals"}}
	pages := []catalog.Page{{Handle: "about", Title: "About Us"}}

	doc := r.Discovery(testShop(), products, collections, pages)
	assert.Equal(t, FormatMarkdown, doc.Format)

	assert.True(t, strings.HasPrefix(doc.Body, "# June & Co\n"))
	assert.Contains(t, doc.Body, "> Intimates made to last")
	assert.Contains(t, doc.Body, "- **Contact:** hello@example.com")
	assert.Contains(t, doc.Body, "We have 1 products available:")
	assert.Contains(t, doc.Body, "- [Midi Slip](https://shop.example.com/a/ai/products/midi-slip.md)")
	assert.Contains(t, doc.Body, "- [New Arrivals](https://shop.example.com/a/ai/collections/new-arrivals.md)")
	assert.Contains(t, doc.Body, "- [About Us](https://shop.example.com/a/ai/pages/about.md)")
	assert.Contains(t, doc.Body, "## Content License")
	assert.Contains(t, doc.Body, "- Markdown overview: https://shop.example.com/a/ai/sitemap.md")
	assert.Contains(t, doc.Body, "- XML sitemap: https://shop.example.com/a/ai/sitemap.xml")
	assert.Contains(t, doc.Body, "robots.txt at https://shop.example.com/robots.txt")
}

func TestDiscoveryFallbacks(t *testing.T) {
	r := testRenderer()

	doc := r.Discovery(catalog.Shop{Name: "Bare Store"}, nil, nil, nil)

	assert.Contains(t, doc.Body, "> An online store powered by Shopify")
	assert.Contains(t, doc.Body, "- **Contact:** Not provided")
	assert.NotContains(t, doc.Body, "### Pages", "empty page list omits the section")
}

func TestProductIndex(t *testing.T) {
	r := testRenderer()

	products := []catalog.Product{
		{Handle: "midi-slip", Title: "Midi Slip", Variants: []catalog.Variant{{Price: "89.00"}}},
		{Handle: "gift-card", Title: "Gift Card"},
	}
	doc := r.ProductIndex(testShop(), products)

	assert.Contains(t, doc.Body, "# June & Co - All Products")
	assert.Contains(t, doc.Body, "2 products available.")
	assert.Contains(t, doc.Body, "- [Midi Slip](products/midi-slip.md) - $89.00")
	assert.Contains(t, doc.Body, "- [Gift Card](products/gift-card.md)\n")
}

func TestCollectionIndex(t *testing.T) {
	r := testRenderer()

	collections := []catalog.Collection{{Handle: "new-arrivals", Title: "New Arrivals"}}
	doc := r.CollectionIndex(testShop(), collections)

	assert.Contains(t, doc.Body, "# June & Co - Collections")
	assert.Contains(t, doc.Body, "1 collections available.")
	assert.Contains(t, doc.Body, "- [New Arrivals](collections/new-arrivals.md)")
}

func TestSitemapMarkdownGroupsByProductType(t *testing.T) {
	r := testRenderer()

	products := []catalog.Product{
		{Handle: "a", Title: "A", ProductType: "Slips"},
		{Handle: "b", Title: "B"},
		{Handle: "c", Title: "C", ProductType: "Slips"},
		{Handle: "d", Title: "D", ProductType: "Bralettes"},
	}

	doc, err := r.SitemapMarkdown(testShop(), products, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, doc.Body, `generated_at: "2025-06-15T10:30:00Z"`)
	assert.Contains(t, doc.Body, "total_products: 4")

	// Groups appear in first-seen order; untyped products land in Other.
	slips := strings.Index(doc.Body, "### Slips")
	other := strings.Index(doc.Body, "### Other")
	bralettes := strings.Index(doc.Body, "### Bralettes")
	require.True(t, slips >= 0 && other >= 0 && bralettes >= 0)
	assert.Less(t, slips, other)
	assert.Less(t, other, bralettes)

	slipsSection := doc.Body[slips:other]
	assert.Contains(t, slipsSection, "- [A](")
	assert.Contains(t, slipsSection, "- [C](")
	otherSection := doc.Body[other:bralettes]
	assert.Contains(t, otherSection, "- [B](")
}

func TestSitemapMarkdownTwoGroupSplit(t *testing.T) {
	r := testRenderer()

	// 5 products, 3 typed: exactly two groups with 3 and 2 entries.
	products := []catalog.Product{
		{Handle: "p1", Title: "P1", ProductType: "Slips"},
		{Handle: "p2", Title: "P2", ProductType: "Slips"},
		{Handle: "p3", Title: "P3"},
		{Handle: "p4", Title: "P4", ProductType: "Slips"},
		{Handle: "p5", Title: "P5"},
	}

	doc, err := r.SitemapMarkdown(testShop(), products, nil, nil)
	require.NoError(t, err)

	start := strings.Index(doc.Body, "## All Products")
	end := strings.Index(doc.Body, "---\n\n*Generated")
	require.True(t, start >= 0 && end > start)
	section := doc.Body[start:end]

	assert.Equal(t, 2, strings.Count(section, "### "))
	other := strings.Index(section, "### Other")
	require.True(t, other > 0)
	assert.Equal(t, 3, strings.Count(section[:other], "\n- ["))
	assert.Equal(t, 2, strings.Count(section[other:], "\n- ["))
}

func TestSitemapMarkdownCollectionDescriptions(t *testing.T) {
	r := testRenderer()

	collections := []catalog.Collection{
		{Handle: "new-arrivals", Title: "New Arrivals", BodyHTML: "<p>Fresh pieces.</p>"},
		{Handle: "sale", Title: "Sale"},
	}
	pages := []catalog.Page{{Handle: "about", Title: "About Us"}}

	doc, err := r.SitemapMarkdown(testShop(), nil, collections, pages)
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "### [New Arrivals](https://shop.example.com/a/ai/collections/new-arrivals.md)")
	assert.Contains(t, doc.Body, "> Fresh pieces.")
	assert.Contains(t, doc.Body, "## Information Pages")
	assert.Contains(t, doc.Body, "- [About Us](https://shop.example.com/a/ai/pages/about.md)")
}

func TestSitemapXML(t *testing.T) {
	r := testRenderer()

	products := []catalog.Product{
		{Handle: "midi-slip", UpdatedAt: "2024-03-01T09:30:00-05:00"},
	}
	collections := []catalog.Collection{
		{Handle: "new-arrivals", UpdatedAt: "2024-04-10T08:00:00-05:00"},
	}
	pages := []catalog.Page{{Handle: "about"}}

	doc, err := r.SitemapXML(products, collections, pages)
	require.NoError(t, err)
	assert.Equal(t, FormatXML, doc.Format)

	assert.True(t, strings.HasPrefix(doc.Body, "<?xml version="))
	assert.Contains(t, doc.Body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	// Fixed discovery entries come first, stamped with the generation
	// date.
	head := strings.Index(doc.Body, "https://shop.example.com/a/ai/llms.txt")
	first := strings.Index(doc.Body, "<loc>")
	require.True(t, head >= 0)
	assert.Equal(t, first+len("<loc>"), head)
	assert.Contains(t, doc.Body, "<loc>https://shop.example.com/a/ai/sitemap.md</loc>")
	assert.Contains(t, doc.Body, "<loc>https://shop.example.com/a/ai/products.md</loc>")
	assert.Contains(t, doc.Body, "<loc>https://shop.example.com/a/ai/collections.md</loc>")
	assert.Contains(t, doc.Body, "<priority>1.0</priority>")

	// Entities carry their own update dates.
	assert.Contains(t, doc.Body, "<loc>https://shop.example.com/a/ai/products/midi-slip.md</loc>")
	assert.Contains(t, doc.Body, "<lastmod>2024-03-01</lastmod>")
	assert.Contains(t, doc.Body, "<lastmod>2024-04-10</lastmod>")

	// Pages without an update date fall back to the generation date.
	assert.Contains(t, doc.Body, "<lastmod>2025-06-15</lastmod>")
	assert.Contains(t, doc.Body, "<changefreq>monthly</changefreq>")
}

func TestSitemapXMLEntryCount(t *testing.T) {
	r := testRenderer()

	doc, err := r.SitemapXML(
		[]catalog.Product{{Handle: "a"}, {Handle: "b"}},
		[]catalog.Collection{{Handle: "c"}},
		nil)
	require.NoError(t, err)

	// 4 fixed entries + 2 products + 1 collection.
	assert.Equal(t, 7, strings.Count(doc.Body, "<url>"))
}
