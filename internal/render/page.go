package render

import (
	"fmt"

	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
	"github.com/juneandco/third-audience/internal/frontmatter"
)

// Page renders one static content page. Pages carry no commerce data, so
// the document is frontmatter, optional body, and attribution.
func (r *Renderer) Page(p catalog.Page) (Document, error) {
	canonical := r.canonicalURL("pages", p.Handle)

	fm := frontmatter.New().
		Set("type", "page").
		Set("title", p.Title).
		Set("handle", p.Handle).
		Set("created_at", p.CreatedAt).
		Set("updated_at", p.UpdatedAt).
		Set("canonical_url", canonical)

	lines := []string{fm.Encode(), "", "# " + p.Title, ""}

	if p.BodyHTML != "" {
		body, err := r.html.Convert(p.BodyHTML)
		if err != nil {
			return Document{}, errors.Render(err, "page body")
		}
		lines = append(lines, body, "")
	}

	lines = append(lines,
		"---",
		"",
		fmt.Sprintf("*Source: [%s on %s](%s)*", p.Title, r.baseURL, canonical))

	return markdown(joinLines(lines)), nil
}
