// Package service orchestrates per-request document delivery: compute
// the cache key, try the cache, and on a miss fetch the minimum upstream
// data, render, and fill the cache before responding.
//
// Concurrent misses for the same key are deliberately not deduplicated.
// Each in-flight request fetches and renders independently and the last
// fill wins; the redundant work is bounded by the TTL window and cheaper
// than coordinating fills.
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/juneandco/third-audience/internal/cache"
	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
	"github.com/juneandco/third-audience/internal/metrics"
	"github.com/juneandco/third-audience/internal/render"
)

// Service is the live facade in front of the data source and renderer.
type Service struct {
	source   catalog.Source
	cache    *cache.Cache
	renderer *render.Renderer
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New wires the facade. recorder may be nil (no instrumentation) and
// logger may be nil (default logger).
func New(source catalog.Source, c *cache.Cache, renderer *render.Renderer, recorder metrics.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, cache: c, renderer: renderer, recorder: recorder, logger: logger}
}

// cached runs fill on a cache miss and stores the result. Render
// failures are never cached.
func (s *Service) cached(key, kind string, fill func() (render.Document, error)) (render.Document, error) {
	if doc, ok := s.cache.Get(key); ok {
		s.recorder.IncCacheLookup(key, metrics.CacheHit)
		return doc, nil
	}
	s.recorder.IncCacheLookup(key, metrics.CacheMiss)

	doc, err := fill()
	s.recorder.IncRender(kind, err == nil)
	if err != nil {
		return render.Document{}, err
	}
	s.cache.Set(key, doc)
	return doc, nil
}

// fetchCatalog loads the full entity universe. The four top-level
// fetches have no ordering dependency and run concurrently.
func (s *Service) fetchCatalog(ctx context.Context) (catalog.Shop, []catalog.Product, []catalog.Collection, []catalog.Page, error) {
	var (
		shop        catalog.Shop
		products    []catalog.Product
		collections []catalog.Collection
		pages       []catalog.Page
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { shop, err = s.source.Shop(ctx); return })
	g.Go(func() (err error) { products, err = s.source.Products(ctx); return })
	g.Go(func() (err error) { collections, err = s.source.Collections(ctx); return })
	g.Go(func() (err error) { pages, err = s.source.Pages(ctx); return })

	if err := g.Wait(); err != nil {
		return catalog.Shop{}, nil, nil, nil, err
	}
	return shop, products, collections, pages, nil
}

// Discovery returns the llms.txt document.
func (s *Service) Discovery(ctx context.Context) (render.Document, error) {
	return s.cached(cache.KeyDiscovery, "discovery", func() (render.Document, error) {
		shop, products, collections, pages, err := s.fetchCatalog(ctx)
		if err != nil {
			return render.Document{}, err
		}
		return s.renderer.Discovery(shop, products, collections, pages), nil
	})
}

// SitemapMarkdown returns the sitemap.md overview document.
func (s *Service) SitemapMarkdown(ctx context.Context) (render.Document, error) {
	return s.cached(cache.KeySitemapMarkdown, "sitemap_md", func() (render.Document, error) {
		shop, products, collections, pages, err := s.fetchCatalog(ctx)
		if err != nil {
			return render.Document{}, err
		}
		return s.renderer.SitemapMarkdown(shop, products, collections, pages)
	})
}

// SitemapXML returns the sitemap.xml document.
func (s *Service) SitemapXML(ctx context.Context) (render.Document, error) {
	return s.cached(cache.KeySitemapXML, "sitemap_xml", func() (render.Document, error) {
		var (
			products    []catalog.Product
			collections []catalog.Collection
			pages       []catalog.Page
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { products, err = s.source.Products(gctx); return })
		g.Go(func() (err error) { collections, err = s.source.Collections(gctx); return })
		g.Go(func() (err error) { pages, err = s.source.Pages(gctx); return })
		if err := g.Wait(); err != nil {
			return render.Document{}, err
		}
		return s.renderer.SitemapXML(products, collections, pages)
	})
}

// ProductIndex returns the products.md list document.
func (s *Service) ProductIndex(ctx context.Context) (render.Document, error) {
	return s.cached(cache.KeyProductIndex, "product_index", func() (render.Document, error) {
		var (
			shop     catalog.Shop
			products []catalog.Product
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { shop, err = s.source.Shop(gctx); return })
		g.Go(func() (err error) { products, err = s.source.Products(gctx); return })
		if err := g.Wait(); err != nil {
			return render.Document{}, err
		}
		return s.renderer.ProductIndex(shop, products), nil
	})
}

// CollectionIndex returns the collections.md list document.
func (s *Service) CollectionIndex(ctx context.Context) (render.Document, error) {
	return s.cached(cache.KeyCollectionIndex, "collection_index", func() (render.Document, error) {
		var (
			shop        catalog.Shop
			collections []catalog.Collection
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { shop, err = s.source.Shop(gctx); return })
		g.Go(func() (err error) { collections, err = s.source.Collections(gctx); return })
		if err := g.Wait(); err != nil {
			return render.Document{}, err
		}
		return s.renderer.CollectionIndex(shop, collections), nil
	})
}

// Product returns one product document by handle.
func (s *Service) Product(ctx context.Context, handle string) (render.Document, error) {
	key := cache.EntityKey(string(catalog.KindProduct), handle)
	return s.cached(key, "product", func() (render.Document, error) {
		product, err := s.source.ProductByHandle(ctx, handle)
		if err != nil {
			return render.Document{}, err
		}
		if product == nil {
			return render.Document{}, errors.NotFound("product", handle)
		}
		fields, err := s.source.ProductMetafields(ctx, product.ID)
		if err != nil {
			return render.Document{}, err
		}
		return s.renderer.Product(*product, catalog.NewMetafieldSet(fields))
	})
}

// Collection returns one collection document by handle, including its
// member product list.
func (s *Service) Collection(ctx context.Context, handle string) (render.Document, error) {
	key := cache.EntityKey(string(catalog.KindCollection), handle)
	return s.cached(key, "collection", func() (render.Document, error) {
		collection, err := s.source.CollectionByHandle(ctx, handle)
		if err != nil {
			return render.Document{}, err
		}
		if collection == nil {
			return render.Document{}, errors.NotFound("collection", handle)
		}
		members, err := s.source.CollectionProducts(ctx, collection.ID)
		if err != nil {
			return render.Document{}, err
		}
		return s.renderer.Collection(*collection, members)
	})
}

// Page returns one page document by handle.
func (s *Service) Page(ctx context.Context, handle string) (render.Document, error) {
	key := cache.EntityKey(string(catalog.KindPage), handle)
	return s.cached(key, "page", func() (render.Document, error) {
		page, err := s.source.PageByHandle(ctx, handle)
		if err != nil {
			return render.Document{}, err
		}
		if page == nil {
			return render.Document{}, errors.NotFound("page", handle)
		}
		return s.renderer.Page(*page)
	})
}
