package metrics

import (
	"context"
	"time"

	"github.com/juneandco/third-audience/internal/catalog"
)

// InstrumentedSource decorates a catalog.Source with upstream request
// duration metrics. The decoration is transparent: errors and results
// pass through untouched.
type InstrumentedSource struct {
	next     catalog.Source
	recorder Recorder
}

// InstrumentSource wraps src; a nil recorder yields src unchanged.
func InstrumentSource(src catalog.Source, recorder Recorder) catalog.Source {
	if recorder == nil {
		return src
	}
	return &InstrumentedSource{next: src, recorder: recorder}
}

func observe[T any](s *InstrumentedSource, endpoint string, call func() (T, error)) (T, error) {
	start := time.Now()
	out, err := call()
	s.recorder.ObserveUpstreamDuration(endpoint, time.Since(start), err == nil)
	return out, err
}

func (s *InstrumentedSource) Shop(ctx context.Context) (catalog.Shop, error) {
	return observe(s, "shop", func() (catalog.Shop, error) { return s.next.Shop(ctx) })
}

func (s *InstrumentedSource) Products(ctx context.Context) ([]catalog.Product, error) {
	return observe(s, "products", func() ([]catalog.Product, error) { return s.next.Products(ctx) })
}

func (s *InstrumentedSource) ProductByHandle(ctx context.Context, handle string) (*catalog.Product, error) {
	return observe(s, "product_by_handle", func() (*catalog.Product, error) { return s.next.ProductByHandle(ctx, handle) })
}

func (s *InstrumentedSource) ProductMetafields(ctx context.Context, productID int64) ([]catalog.Metafield, error) {
	return observe(s, "product_metafields", func() ([]catalog.Metafield, error) { return s.next.ProductMetafields(ctx, productID) })
}

func (s *InstrumentedSource) Collections(ctx context.Context) ([]catalog.Collection, error) {
	return observe(s, "collections", func() ([]catalog.Collection, error) { return s.next.Collections(ctx) })
}

func (s *InstrumentedSource) CollectionByHandle(ctx context.Context, handle string) (*catalog.Collection, error) {
	return observe(s, "collection_by_handle", func() (*catalog.Collection, error) { return s.next.CollectionByHandle(ctx, handle) })
}

func (s *InstrumentedSource) CollectionProducts(ctx context.Context, collectionID int64) ([]catalog.Product, error) {
	return observe(s, "collection_products", func() ([]catalog.Product, error) { return s.next.CollectionProducts(ctx, collectionID) })
}

func (s *InstrumentedSource) Pages(ctx context.Context) ([]catalog.Page, error) {
	return observe(s, "pages", func() ([]catalog.Page, error) { return s.next.Pages(ctx) })
}

func (s *InstrumentedSource) PageByHandle(ctx context.Context, handle string) (*catalog.Page, error) {
	return observe(s, "page_by_handle", func() (*catalog.Page, error) { return s.next.PageByHandle(ctx, handle) })
}

var _ catalog.Source = (*InstrumentedSource)(nil)
