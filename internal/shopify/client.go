// Package shopify implements the catalog.Source contract against the
// Shopify Admin REST API. It is a thin read-only collaborator: every
// non-success response is surfaced as an upstream failure, no retries,
// no client-imposed deadlines (callers may impose one via context).
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
)

// APIVersion pins the Admin API version all requests use.
const APIVersion = "2024-01"

// pageLimit is the per-request collection size. Catalogs beyond a single
// page are out of scope for this client.
const pageLimit = "250"

// Client talks to one store's Admin API.
type Client struct {
	domain string
	token  string
	http   *http.Client
}

var _ catalog.Source = (*Client)(nil)

// New creates a client for the given store domain and access token.
// httpClient may be nil, in which case http.DefaultClient is used.
func New(domain, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{domain: domain, token: token, http: httpClient}
}

// fetch issues one GET and decodes the JSON envelope into out.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := url.URL{
		Scheme:   "https",
		Host:     c.domain,
		Path:     "/admin/api/" + APIVersion + "/" + endpoint,
		RawQuery: params.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Upstream(err, "building request")
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Upstream(err, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Upstream(
			fmt.Errorf("status %d: %s", resp.StatusCode, body),
			endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Upstream(err, "decoding "+endpoint)
	}
	return nil
}

// Shop returns store-level metadata.
func (c *Client) Shop(ctx context.Context) (catalog.Shop, error) {
	var envelope struct {
		Shop catalog.Shop `json:"shop"`
	}
	if err := c.fetch(ctx, "shop.json", nil, &envelope); err != nil {
		return catalog.Shop{}, err
	}
	return envelope.Shop, nil
}

// Products returns all active products in source order.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var envelope struct {
		Products []catalog.Product `json:"products"`
	}
	params := url.Values{"limit": {pageLimit}, "status": {"active"}}
	if err := c.fetch(ctx, "products.json", params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

// ProductByHandle returns the product for handle, or nil when absent.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*catalog.Product, error) {
	var envelope struct {
		Products []catalog.Product `json:"products"`
	}
	params := url.Values{"handle": {handle}, "limit": {"1"}}
	if err := c.fetch(ctx, "products.json", params, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Products) == 0 {
		return nil, nil
	}
	return &envelope.Products[0], nil
}

// ProductMetafields returns the metafields attached to a product.
func (c *Client) ProductMetafields(ctx context.Context, productID int64) ([]catalog.Metafield, error) {
	var envelope struct {
		Metafields []catalog.Metafield `json:"metafields"`
	}
	endpoint := fmt.Sprintf("products/%d/metafields.json", productID)
	if err := c.fetch(ctx, endpoint, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Metafields, nil
}

// Collections returns custom then smart collections, concatenated in
// source order.
func (c *Client) Collections(ctx context.Context) ([]catalog.Collection, error) {
	params := url.Values{"limit": {pageLimit}}

	var custom struct {
		Collections []catalog.Collection `json:"custom_collections"`
	}
	if err := c.fetch(ctx, "custom_collections.json", params, &custom); err != nil {
		return nil, err
	}

	var smart struct {
		Collections []catalog.Collection `json:"smart_collections"`
	}
	if err := c.fetch(ctx, "smart_collections.json", params, &smart); err != nil {
		return nil, err
	}

	return append(custom.Collections, smart.Collections...), nil
}

// CollectionByHandle checks custom collections first, then smart ones.
// Returns nil when neither kind matches.
func (c *Client) CollectionByHandle(ctx context.Context, handle string) (*catalog.Collection, error) {
	params := url.Values{"handle": {handle}, "limit": {"1"}}

	var custom struct {
		Collections []catalog.Collection `json:"custom_collections"`
	}
	if err := c.fetch(ctx, "custom_collections.json", params, &custom); err != nil {
		return nil, err
	}
	if len(custom.Collections) > 0 {
		return &custom.Collections[0], nil
	}

	var smart struct {
		Collections []catalog.Collection `json:"smart_collections"`
	}
	if err := c.fetch(ctx, "smart_collections.json", params, &smart); err != nil {
		return nil, err
	}
	if len(smart.Collections) > 0 {
		return &smart.Collections[0], nil
	}
	return nil, nil
}

// CollectionProducts returns the member products of a collection.
func (c *Client) CollectionProducts(ctx context.Context, collectionID int64) ([]catalog.Product, error) {
	var envelope struct {
		Products []catalog.Product `json:"products"`
	}
	params := url.Values{
		"collection_id": {strconv.FormatInt(collectionID, 10)},
		"limit":         {pageLimit},
	}
	if err := c.fetch(ctx, "products.json", params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

// Pages returns all published pages.
func (c *Client) Pages(ctx context.Context) ([]catalog.Page, error) {
	var envelope struct {
		Pages []catalog.Page `json:"pages"`
	}
	params := url.Values{"limit": {pageLimit}, "published_status": {"published"}}
	if err := c.fetch(ctx, "pages.json", params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Pages, nil
}

// PageByHandle returns the page for handle, or nil when absent.
func (c *Client) PageByHandle(ctx context.Context, handle string) (*catalog.Page, error) {
	var envelope struct {
		Pages []catalog.Page `json:"pages"`
	}
	params := url.Values{"handle": {handle}, "limit": {"1"}}
	if err := c.fetch(ctx, "pages.json", params, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Pages) == 0 {
		return nil, nil
	}
	return &envelope.Pages[0], nil
}
