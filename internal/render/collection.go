package render

import (
	"fmt"

	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
	"github.com/juneandco/third-audience/internal/frontmatter"
)

// Collection renders one collection document. members is the collection's
// product list in source order; product_count reflects exactly this list.
func (r *Renderer) Collection(c catalog.Collection, members []catalog.Product) (Document, error) {
	canonical := r.canonicalURL("collections", c.Handle)

	fm := frontmatter.New().
		Set("type", "collection").
		Set("title", c.Title).
		Set("handle", c.Handle).
		Set("product_count", len(members)).
		Set("updated_at", c.UpdatedAt).
		Set("canonical_url", canonical)

	lines := []string{fm.Encode(), "", "# " + c.Title, ""}

	if c.BodyHTML != "" {
		body, err := r.html.Convert(c.BodyHTML)
		if err != nil {
			return Document{}, errors.Render(err, "collection body")
		}
		lines = append(lines, body, "")
	}

	lines = append(lines, fmt.Sprintf("## Products (%d)", len(members)), "")

	for _, p := range members {
		priceStr := ""
		if price := p.Price(); price != "" {
			priceStr = " - " + r.formatPrice(price)
		}
		status := ""
		if !p.Available() {
			status = " *(Out of Stock)*"
		}
		lines = append(lines, fmt.Sprintf("- [%s](%s)%s%s",
			p.Title, r.aiURL("products/"+p.Handle+".md"), priceStr, status))
	}

	lines = append(lines,
		"",
		"---",
		"",
		fmt.Sprintf("*Source: [%s on %s](%s)*", c.Title, r.baseURL, canonical))

	return markdown(joinLines(lines)), nil
}
