package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juneandco/third-audience/internal/catalog"
)

func singleVariantProduct() catalog.Product {
	return catalog.Product{
		ID:          1001,
		Handle:      "midi-slip",
		Title:       "Midi Slip",
		Vendor:      "June & Co",
		ProductType: "Slips",
		Tags:        "lace, midi",
		CreatedAt:   "2024-01-05T10:00:00-05:00",
		UpdatedAt:   "2024-03-01T09:30:00-05:00",
		Variants: []catalog.Variant{
			{ID: 1, Title: "Default Title", Price: "89.00", Available: true},
		},
		Options: []catalog.Option{
			{Name: "Title", Values: []string{"Default Title"}},
		},
	}
}

func TestProductMinimalDocument(t *testing.T) {
	r := testRenderer()

	doc, err := r.Product(singleVariantProduct(), nil)
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, doc.Format)

	expected := strings.Join([]string{
		"---",
		`type: "product"`,
		`title: "Midi Slip"`,
		`handle: "midi-slip"`,
		`vendor: "June & Co"`,
		`product_type: "Slips"`,
		`price: "89.00"`,
		`currency: "USD"`,
		"available: true",
		`created_at: "2024-01-05T10:00:00-05:00"`,
		`updated_at: "2024-03-01T09:30:00-05:00"`,
		`canonical_url: "https://shop.example.com/products/midi-slip"`,
		"tags:",
		`  - "lace"`,
		`  - "midi"`,
		"---",
		"",
		"# Midi Slip",
		"",
		"**Price:** $89.00",
		"",
		"**Brand:** June & Co",
		"",
		"---",
		"",
		"*Source: [Midi Slip on https://shop.example.com](https://shop.example.com/products/midi-slip)*",
	}, "\n")
	assert.Equal(t, expected, doc.Body)
}

func TestProductCompareAtPriceShownOnlyWhenGreater(t *testing.T) {
	r := testRenderer()

	p := singleVariantProduct()
	p.Variants[0].CompareAtPrice = "120.00"
	doc, err := r.Product(p, nil)
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "**Price:** $89.00 ~~$120.00~~")
	assert.Contains(t, doc.Body, `compare_at_price: "120.00"`)

	p.Variants[0].CompareAtPrice = "89.00"
	doc, err = r.Product(p, nil)
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "**Price:** $89.00\n")
	assert.NotContains(t, doc.Body, "~~")
}

func TestProductDescriptionFromHTML(t *testing.T) {
	r := testRenderer()

	p := singleVariantProduct()
	p.BodyHTML = "<p>Soft satin slip with <strong>adjustable</strong> straps.</p>"
	doc, err := r.Product(p, nil)
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "## Description")
	assert.Contains(t, doc.Body, "Soft satin slip with **adjustable** straps.")
}

func TestProductVariantsListedWhenMultiple(t *testing.T) {
	r := testRenderer()

	p := singleVariantProduct()
	p.Variants = []catalog.Variant{
		{Title: "S", Price: "89.00", Available: true},
		{Title: "M", Price: "89.00", Available: false},
	}
	doc, err := r.Product(p, nil)
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "## Variants")
	assert.Contains(t, doc.Body, "- **S**: $89.00 (In Stock)")
	assert.Contains(t, doc.Body, "- **M**: $89.00 (Out of Stock)")
}

func TestProductSingleVariantOmitsVariantsSection(t *testing.T) {
	r := testRenderer()

	doc, err := r.Product(singleVariantProduct(), nil)
	require.NoError(t, err)
	assert.NotContains(t, doc.Body, "## Variants")
}

func TestProductOptionsSkipSyntheticTitle(t *testing.T) {
	r := testRenderer()

	// Only the synthetic "Title" option: no Options section at all.
	doc, err := r.Product(singleVariantProduct(), nil)
	require.NoError(t, err)
	assert.NotContains(t, doc.Body, "## Options")

	p := singleVariantProduct()
	p.Options = []catalog.Option{
		{Name: "Title", Values: []string{"Default Title"}},
		{Name: "Size", Values: []string{"S", "M", "L"}},
	}
	doc, err = r.Product(p, nil)
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "## Options")
	assert.Contains(t, doc.Body, "- **Size:** S, M, L")
	assert.NotContains(t, doc.Body, "- **Title:**")
}

func TestProductMetafieldSections(t *testing.T) {
	r := testRenderer()

	meta := catalog.MetafieldSet{
		"fit.coverage":       "Full",
		"fit.rise":           "High",
		"fabric.composition": "80% nylon, 20% spandex",
		"care.instructions":  "<p>Machine wash cold.</p>",
		"care.notes":         "Lay flat to dry",
	}
	doc, err := r.Product(singleVariantProduct(), meta)
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "## Fit Details")
	assert.Contains(t, doc.Body, "- **Coverage:** Full")
	assert.Contains(t, doc.Body, "- **Rise:** High")
	assert.NotContains(t, doc.Body, "- **Stretch:**")

	assert.Contains(t, doc.Body, "## Materials")
	assert.Contains(t, doc.Body, "- **Composition:** 80% nylon, 20% spandex")
	assert.NotContains(t, doc.Body, "- **Opacity:**")

	assert.Contains(t, doc.Body, "## Care Instructions")
	assert.Contains(t, doc.Body, "Machine wash cold.")
	assert.Contains(t, doc.Body, "Lay flat to dry")
}

func TestProductNoMetafieldsNoSections(t *testing.T) {
	r := testRenderer()

	doc, err := r.Product(singleVariantProduct(), catalog.MetafieldSet{})
	require.NoError(t, err)

	assert.NotContains(t, doc.Body, "## Fit Details")
	assert.NotContains(t, doc.Body, "## Materials")
	assert.NotContains(t, doc.Body, "## Care Instructions")
}

func TestProductImagesWithAltFallback(t *testing.T) {
	r := testRenderer()

	p := singleVariantProduct()
	p.Images = []catalog.Image{
		{Src: "https://cdn.example.com/1.jpg", Alt: "Front view"},
		{Src: "https://cdn.example.com/2.jpg"},
	}
	doc, err := r.Product(p, nil)
	require.NoError(t, err)

	assert.Contains(t, doc.Body, "## Images")
	assert.Contains(t, doc.Body, "- [Front view](https://cdn.example.com/1.jpg)")
	assert.Contains(t, doc.Body, "- [Midi Slip image 2](https://cdn.example.com/2.jpg)")
}
