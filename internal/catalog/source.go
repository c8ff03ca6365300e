package catalog

import "context"

// Source is the read contract against the upstream commerce platform.
// By-handle lookups return nil (not an error) when no live entity
// matches; any failed call is a hard failure for that fetch. The core
// never retries.
type Source interface {
	Shop(ctx context.Context) (Shop, error)

	Products(ctx context.Context) ([]Product, error)
	ProductByHandle(ctx context.Context, handle string) (*Product, error)
	ProductMetafields(ctx context.Context, productID int64) ([]Metafield, error)

	Collections(ctx context.Context) ([]Collection, error)
	CollectionByHandle(ctx context.Context, handle string) (*Collection, error)
	CollectionProducts(ctx context.Context, collectionID int64) ([]Product, error)

	Pages(ctx context.Context) ([]Page, error)
	PageByHandle(ctx context.Context, handle string) (*Page, error)
}
