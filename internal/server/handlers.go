package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/juneandco/third-audience/internal/render"
)

// writeDocument sends a rendered document with the content type its
// format demands. Markdown goes out as text/plain with an explicit
// format marker so generic clients don't try to render it.
func writeDocument(w http.ResponseWriter, doc render.Document) {
	switch doc.Format {
	case render.FormatXML:
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Format", "markdown")
	}
	_, _ = w.Write([]byte(doc.Body))
}

// document adapts an aggregate-document service call to a handler.
func (s *Server) document(fetch func(context.Context) (render.Document, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := fetch(r.Context())
		if err != nil {
			s.adapter.WriteError(w, r, err)
			return
		}
		writeDocument(w, doc)
	}
}

// entityDocument adapts a by-handle service call to a handler. The path
// segment must carry a ".md" suffix; anything else is a 404.
func (s *Server) entityDocument(fetch func(context.Context, string) (render.Document, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle, ok := strings.CutSuffix(r.PathValue("doc"), ".md")
		if !ok || handle == "" {
			s.handleNotFound(w, r)
			return
		}
		doc, err := fetch(r.Context(), handle)
		if err != nil {
			s.adapter.WriteError(w, r, err)
			return
		}
		writeDocument(w, doc)
	}
}

// handleHealth reports liveness as JSON.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "third-audience",
	})
}

// notFoundBody is the Markdown help page returned for unknown paths, so
// a lost agent still finds its way to the directory.
const notFoundBody = `# 404 - Not Found

The requested content is not available.

## Available Endpoints

- ` + "`/llms.txt`" + ` - Discovery file for AI agents
- ` + "`/sitemap.md`" + ` - Site structure overview
- ` + "`/products.md`" + ` - All products list
- ` + "`/products/:handle.md`" + ` - Individual product
- ` + "`/collections.md`" + ` - All collections list
- ` + "`/collections/:handle.md`" + ` - Individual collection
- ` + "`/pages/:handle.md`" + ` - Static page

Visit the [llms.txt](/llms.txt) file for the full directory.
`

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Format", "markdown")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundBody))
}
