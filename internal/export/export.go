// Package export materializes the full document set as a static file
// tree mirroring the HTTP routes. One pass: fetch the entity universe
// once, write the aggregate documents, then one file per entity.
//
// Aggregate failures abort the run; per-entity failures are collected
// into the summary and the batch continues. There is no cache here: a
// single pass over fresh data supersedes it.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
	"github.com/juneandco/third-audience/internal/render"
)

// ItemResult records the outcome for one exported document.
type ItemResult struct {
	Path string
	Err  error
}

// OK reports whether the item was written.
func (r ItemResult) OK() bool { return r.Err == nil }

// Summary is the inspectable outcome of a run.
type Summary struct {
	Results []ItemResult
}

// Written counts successfully written documents.
func (s Summary) Written() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failures returns the failed items.
func (s Summary) Failures() []ItemResult {
	var failed []ItemResult
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Exporter writes the document tree for one store.
type Exporter struct {
	source   catalog.Source
	renderer *render.Renderer
	outDir   string
	logger   *slog.Logger
}

// New creates an exporter targeting outDir.
func New(source catalog.Source, renderer *render.Renderer, outDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{source: source, renderer: renderer, outDir: outDir, logger: logger}
}

// Run executes one export pass. The returned error is non-nil only for
// fatal failures (catalog fetch, aggregate documents, output setup);
// per-entity failures land in the summary.
func (e *Exporter) Run(ctx context.Context) (Summary, error) {
	var (
		shop        catalog.Shop
		products    []catalog.Product
		collections []catalog.Collection
		pages       []catalog.Page
	)

	// The four top-level fetches have no ordering dependency.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { shop, err = e.source.Shop(gctx); return })
	g.Go(func() (err error) { products, err = e.source.Products(gctx); return })
	g.Go(func() (err error) { collections, err = e.source.Collections(gctx); return })
	g.Go(func() (err error) { pages, err = e.source.Pages(gctx); return })
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	e.logger.Info("catalog fetched",
		"products", len(products),
		"collections", len(collections),
		"pages", len(pages))

	for _, dir := range []string{"products", "collections", "pages"} {
		if err := os.MkdirAll(filepath.Join(e.outDir, dir), 0o755); err != nil {
			return Summary{}, errors.Wrap(err, errors.CategoryFilesystem, "creating output directory")
		}
	}

	if err := e.writeAggregates(shop, products, collections, pages); err != nil {
		return Summary{}, err
	}

	var summary Summary
	summary.Results = append(summary.Results, e.exportProducts(ctx, products)...)
	summary.Results = append(summary.Results, e.exportCollections(ctx, collections)...)
	summary.Results = append(summary.Results, e.exportPages(pages)...)

	e.logger.Info("export complete",
		"written", summary.Written(),
		"failed", len(summary.Failures()),
		"output", e.outDir)
	return summary, nil
}

// writeAggregates renders and writes the discovery, sitemap, and index
// documents. Any failure here is fatal.
func (e *Exporter) writeAggregates(shop catalog.Shop, products []catalog.Product, collections []catalog.Collection, pages []catalog.Page) error {
	if err := e.write("llms.txt", e.renderer.Discovery(shop, products, collections, pages)); err != nil {
		return err
	}

	overview, err := e.renderer.SitemapMarkdown(shop, products, collections, pages)
	if err != nil {
		return err
	}
	if err := e.write("sitemap.md", overview); err != nil {
		return err
	}

	sitemap, err := e.renderer.SitemapXML(products, collections, pages)
	if err != nil {
		return err
	}
	if err := e.write("sitemap.xml", sitemap); err != nil {
		return err
	}

	if err := e.write("products.md", e.renderer.ProductIndex(shop, products)); err != nil {
		return err
	}
	return e.write("collections.md", e.renderer.CollectionIndex(shop, collections))
}

// exportProducts writes one document per product, fetching metafields
// one product at a time.
func (e *Exporter) exportProducts(ctx context.Context, products []catalog.Product) []ItemResult {
	results := make([]ItemResult, 0, len(products))
	for _, p := range products {
		path := filepath.Join("products", p.Handle+".md")
		results = append(results, e.exportItem(path, p.Handle, func() (render.Document, error) {
			fields, err := e.source.ProductMetafields(ctx, p.ID)
			if err != nil {
				return render.Document{}, err
			}
			return e.renderer.Product(p, catalog.NewMetafieldSet(fields))
		}))
	}
	return results
}

// exportCollections writes one document per collection, fetching member
// products one collection at a time.
func (e *Exporter) exportCollections(ctx context.Context, collections []catalog.Collection) []ItemResult {
	results := make([]ItemResult, 0, len(collections))
	for _, c := range collections {
		path := filepath.Join("collections", c.Handle+".md")
		results = append(results, e.exportItem(path, c.Handle, func() (render.Document, error) {
			members, err := e.source.CollectionProducts(ctx, c.ID)
			if err != nil {
				return render.Document{}, err
			}
			return e.renderer.Collection(c, members)
		}))
	}
	return results
}

// exportPages writes one document per page. Pages need no side data.
func (e *Exporter) exportPages(pages []catalog.Page) []ItemResult {
	results := make([]ItemResult, 0, len(pages))
	for _, p := range pages {
		path := filepath.Join("pages", p.Handle+".md")
		results = append(results, e.exportItem(path, p.Handle, func() (render.Document, error) {
			return e.renderer.Page(p)
		}))
	}
	return results
}

// exportItem runs one render-and-write, converting any failure into a
// recorded result instead of an abort.
func (e *Exporter) exportItem(path, handle string, build func() (render.Document, error)) ItemResult {
	if handle == "" {
		err := errors.New(errors.CategoryRender, "empty handle")
		e.logger.Warn("skipping document", "path", path, "error", err)
		return ItemResult{Path: path, Err: err}
	}

	doc, err := build()
	if err != nil {
		e.logger.Warn("skipping document", "path", path, "error", err)
		return ItemResult{Path: path, Err: err}
	}
	if err := e.write(path, doc); err != nil {
		e.logger.Warn("skipping document", "path", path, "error", err)
		return ItemResult{Path: path, Err: err}
	}
	return ItemResult{Path: path}
}

// write stores one document under the output directory.
func (e *Exporter) write(path string, doc render.Document) error {
	full := filepath.Join(e.outDir, path)
	if err := os.WriteFile(full, []byte(doc.Body), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFilesystem, fmt.Sprintf("writing %s", path))
	}
	e.logger.Debug("wrote document", "path", path)
	return nil
}
