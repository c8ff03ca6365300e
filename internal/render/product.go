package render

import (
	"fmt"
	"strings"

	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
	"github.com/juneandco/third-audience/internal/frontmatter"
)

// Product renders one product document. meta may be nil when the product
// carries no metafields.
func (r *Renderer) Product(p catalog.Product, meta catalog.MetafieldSet) (Document, error) {
	canonical := r.canonicalURL("products", p.Handle)
	price := p.Price()
	compareAt := p.CompareAtPrice()

	fm := frontmatter.New().
		Set("type", "product").
		Set("title", p.Title).
		Set("handle", p.Handle).
		Set("vendor", p.Vendor).
		Set("product_type", p.ProductType).
		SetNonEmpty("price", price).
		Set("currency", r.currency).
		SetNonEmpty("compare_at_price", compareAt).
		Set("available", p.Available()).
		Set("created_at", p.CreatedAt).
		Set("updated_at", p.UpdatedAt).
		Set("canonical_url", canonical).
		Set("tags", p.TagList())

	lines := []string{fm.Encode(), "", "# " + p.Title, ""}

	if price != "" {
		if compareAt != "" && priceGreater(compareAt, price) {
			lines = append(lines,
				fmt.Sprintf("**Price:** %s ~~%s~~", r.formatPrice(price), r.formatPrice(compareAt)),
				"")
		} else {
			lines = append(lines, "**Price:** "+r.formatPrice(price), "")
		}
	}

	if p.Vendor != "" {
		lines = append(lines, "**Brand:** "+p.Vendor, "")
	}

	if p.BodyHTML != "" {
		body, err := r.html.Convert(p.BodyHTML)
		if err != nil {
			return Document{}, errors.Render(err, "product body")
		}
		lines = append(lines, "## Description", "", body, "")
	}

	if len(p.Variants) > 1 {
		lines = append(lines, "## Variants", "")
		for _, v := range p.Variants {
			availability := "Out of Stock"
			if v.Available {
				availability = "In Stock"
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s (%s)", v.Title, r.formatPrice(v.Price), availability))
		}
		lines = append(lines, "")
	}

	// "Title" is the synthetic option on single-variant products; a
	// section with nothing but that option is not emitted at all.
	var optionLines []string
	for _, opt := range p.Options {
		if opt.Name == "Title" {
			continue
		}
		optionLines = append(optionLines, fmt.Sprintf("- **%s:** %s", opt.Name, strings.Join(opt.Values, ", ")))
	}
	if len(optionLines) > 0 {
		lines = append(lines, "## Options", "")
		lines = append(lines, optionLines...)
		lines = append(lines, "")
	}

	if meta["fit.coverage"] != "" || meta["fit.rise"] != "" || meta["fit.stretch_level"] != "" {
		lines = append(lines, "## Fit Details", "")
		if v := meta["fit.coverage"]; v != "" {
			lines = append(lines, "- **Coverage:** "+v)
		}
		if v := meta["fit.rise"]; v != "" {
			lines = append(lines, "- **Rise:** "+v)
		}
		if v := meta["fit.stretch_level"]; v != "" {
			lines = append(lines, "- **Stretch:** "+v)
		}
		lines = append(lines, "")
	}

	if meta["fabric.composition"] != "" || meta["fabric.opacity"] != "" {
		lines = append(lines, "## Materials", "")
		if v := meta["fabric.composition"]; v != "" {
			lines = append(lines, "- **Composition:** "+v)
		}
		if v := meta["fabric.opacity"]; v != "" {
			lines = append(lines, "- **Opacity:** "+v)
		}
		lines = append(lines, "")
	}

	if meta["care.instructions"] != "" || meta["care.notes"] != "" {
		lines = append(lines, "## Care Instructions", "")
		if v := meta["care.instructions"]; v != "" {
			instructions, err := r.html.Convert(v)
			if err != nil {
				return Document{}, errors.Render(err, "care instructions")
			}
			lines = append(lines, instructions)
		}
		if v := meta["care.notes"]; v != "" {
			lines = append(lines, "", v)
		}
		lines = append(lines, "")
	}

	if len(p.Images) > 0 {
		lines = append(lines, "## Images", "")
		for i, img := range p.Images {
			alt := img.Alt
			if alt == "" {
				alt = fmt.Sprintf("%s image %d", p.Title, i+1)
			}
			lines = append(lines, fmt.Sprintf("- [%s](%s)", alt, img.Src))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"---",
		"",
		fmt.Sprintf("*Source: [%s on %s](%s)*", p.Title, r.baseURL, canonical))

	return markdown(joinLines(lines)), nil
}
