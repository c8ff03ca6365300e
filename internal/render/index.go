package render

import (
	"fmt"

	"github.com/juneandco/third-audience/internal/catalog"
)

// ProductIndex renders the all-products list document. Links are
// relative so the document works identically when served and when
// exported to a file tree.
func (r *Renderer) ProductIndex(shop catalog.Shop, products []catalog.Product) Document {
	lines := []string{
		fmt.Sprintf("# %s - All Products", shop.Name),
		"",
		fmt.Sprintf("%d products available.", len(products)),
		"",
	}

	for _, p := range products {
		priceStr := ""
		if price := p.Price(); price != "" {
			priceStr = " - $" + price
		}
		lines = append(lines, fmt.Sprintf("- [%s](products/%s.md)%s", p.Title, p.Handle, priceStr))
	}

	return markdown(joinLines(lines))
}

// CollectionIndex renders the all-collections list document.
func (r *Renderer) CollectionIndex(shop catalog.Shop, collections []catalog.Collection) Document {
	lines := []string{
		fmt.Sprintf("# %s - Collections", shop.Name),
		"",
		fmt.Sprintf("%d collections available.", len(collections)),
		"",
	}

	for _, c := range collections {
		lines = append(lines, fmt.Sprintf("- [%s](collections/%s.md)", c.Title, c.Handle))
	}

	return markdown(joinLines(lines))
}
