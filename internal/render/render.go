// Package render maps commerce entity snapshots to canonical text
// documents (Markdown with YAML frontmatter, plus the XML sitemap).
//
// Rendering is pure: no I/O, no shared state, and output depends only on
// the inputs. Entity lists are always emitted in the order received from
// the data source. The only clock access is the sitemap generated-at
// stamp, injected via Now so tests can pin it.
package render

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/juneandco/third-audience/internal/htmlmd"
)

// Format tags the document body encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatXML      Format = "xml"
)

// Document is one rendered text artifact. It has no identity beyond the
// cache key or file path that addresses it.
type Document struct {
	Format Format
	Body   string
}

func markdown(body string) Document { return Document{Format: FormatMarkdown, Body: body} }

// joinLines assembles a document from its lines. Documents are built
// line-wise so sections compose without trailing-whitespace surprises.
func joinLines(lines []string) string { return strings.Join(lines, "\n") }

// Renderer renders every document kind for one store.
type Renderer struct {
	baseURL  string
	currency string
	html     *htmlmd.Converter
	now      func() time.Time
	printer  *message.Printer
}

// New creates a Renderer. baseURL is the public store URL without a
// trailing slash; currency is the ISO code shown in product frontmatter
// (empty defaults to USD).
func New(baseURL, currency string, conv *htmlmd.Converter) *Renderer {
	if currency == "" {
		currency = "USD"
	}
	if conv == nil {
		conv = htmlmd.New()
	}
	return &Renderer{
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
		html:     conv,
		now:      time.Now,
		printer:  message.NewPrinter(language.AmericanEnglish),
	}
}

// WithNow overrides the clock used for sitemap generation stamps.
func (r *Renderer) WithNow(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Currency returns the ISO currency code documents are rendered with.
func (r *Renderer) Currency() string { return r.currency }

// aiURL builds an absolute URL under the AI content mount.
func (r *Renderer) aiURL(path string) string {
	return r.baseURL + "/a/ai/" + path
}

// canonicalURL builds the shopper-facing URL for an entity.
func (r *Renderer) canonicalURL(section, handle string) string {
	return r.baseURL + "/" + section + "/" + handle
}

// formatPrice renders an upstream decimal amount for display, with
// localized digit grouping. Unparseable amounts pass through verbatim so
// a malformed price never hides a product.
func (r *Renderer) formatPrice(amount string) string {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return amount
	}
	if r.currency == "USD" {
		return r.printer.Sprintf("$%.2f", f)
	}
	return r.printer.Sprintf("%s %.2f", r.currency, f)
}

// dateOnly truncates an RFC 3339 timestamp to its calendar date.
func dateOnly(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

// priceGreater reports whether a > b, comparing the upstream decimal
// strings numerically. Unparseable operands compare as not greater.
func priceGreater(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return false
	}
	return fa > fb
}
