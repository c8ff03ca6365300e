// Package catalog defines the commerce entity snapshots the rest of the
// application renders from. Entities are read-only: mutation happens
// upstream, the renderer and exporter only ever see a point-in-time copy.
package catalog

import "strings"

// Kind discriminates the entity variants that carry a handle.
type Kind string

const (
	KindProduct    Kind = "product"
	KindCollection Kind = "collection"
	KindPage       Kind = "page"
)

// Shop holds store-level metadata used by aggregate documents.
type Shop struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
}

// Variant is a purchasable variation of a product.
type Variant struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Price          string `json:"price"`
	CompareAtPrice string `json:"compare_at_price"`
	Available      bool   `json:"available"`
}

// Option describes a product axis such as Size or Color. Single-variant
// products carry a synthetic option named "Title" which is never shown.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Image references product media. Only the reference is emitted, never
// the binary.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Product is a point-in-time product snapshot. Tags arrive from upstream
// as a single comma-separated string.
type Product struct {
	ID          int64     `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	BodyHTML    string    `json:"body_html"`
	Tags        string    `json:"tags"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Variants    []Variant `json:"variants"`
	Options     []Option  `json:"options"`
	Images      []Image   `json:"images"`
}

// Available reports whether any variant of the product is purchasable.
// Both the product document and collection membership lines use this
// same predicate.
func (p Product) Available() bool {
	for _, v := range p.Variants {
		if v.Available {
			return true
		}
	}
	return false
}

// Price returns the canonical listed price: the first variant's price,
// or "" when the product has no variants.
func (p Product) Price() string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].Price
}

// CompareAtPrice returns the first variant's compare-at price, or "".
func (p Product) CompareAtPrice() string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].CompareAtPrice
}

// TagList splits the upstream comma-separated tag string into individual
// tags. Empty input yields an empty (non-nil) slice.
func (p Product) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	parts := strings.Split(p.Tags, ", ")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Collection is a point-in-time collection snapshot. Member products are
// fetched separately and passed alongside where needed.
type Collection struct {
	ID        int64  `json:"id"`
	Handle    string `json:"handle"`
	Title     string `json:"title"`
	BodyHTML  string `json:"body_html"`
	UpdatedAt string `json:"updated_at"`
}

// Page is a static content page carrying no commerce data.
type Page struct {
	ID        int64  `json:"id"`
	Handle    string `json:"handle"`
	Title     string `json:"title"`
	BodyHTML  string `json:"body_html"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Metafield is one structured attribute attached to a product.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// MetafieldSet maps "namespace.key" to a scalar value.
type MetafieldSet map[string]string

// NewMetafieldSet builds the lookup map the renderer consumes.
func NewMetafieldSet(fields []Metafield) MetafieldSet {
	set := make(MetafieldSet, len(fields))
	for _, m := range fields {
		set[m.Namespace+"."+m.Key] = m.Value
	}
	return set
}
