package domain

import "context"

// ObjectStore defines the raw-layer boundary. Get returns ErrObjectNotFound
// (possibly wrapped) when the key does not exist.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	EnsureBucket(ctx context.Context) error
}

// CatalogStore defines the warehouse boundary. Replace methods have full
// truncate-and-load semantics: the previous table contents are discarded,
// never upserted. A reader racing a replace may observe an empty or partial
// table; callers accept that rather than mask it.
type CatalogStore interface {
	ReplaceProducts(ctx context.Context, rows []ProductRecord) error
	Products(ctx context.Context) ([]ProductRecord, error)

	ReplaceLimits(ctx context.Context, rows []NutritionLimit) error
	Limits(ctx context.Context) ([]NutritionLimit, error)

	ReplaceProfiles(ctx context.Context, rows []UserProfile) error
	Profiles(ctx context.Context) ([]UserProfile, error)
	ProfileByName(ctx context.Context, name string) (*UserProfile, error)

	ReplaceSideDishes(ctx context.Context, rows []SideDish) error
	SideDishes(ctx context.Context) ([]SideDish, error)
}

// SnapshotCache caches warehouse reads between recommendation requests.
type SnapshotCache interface {
	Snapshot() (*CatalogSnapshot, bool)
	Store(snap *CatalogSnapshot)
	Invalidate()
}
