package lookup

import (
	"github.com/roach88/phasedb/internal/chem"
	"github.com/roach88/phasedb/internal/store"
)

// Catalog answers lookups against a single snapshot.
// It is immutable and safe for concurrent use.
type Catalog struct {
	snap   *store.Snapshot
	strict bool
}

type options struct {
	strict bool
}

// Option configures a Catalog.
type Option func(*options)

// WithStrictResolution makes Resolve fail with CodeAmbiguousIdentifier when
// the candidates of an identifier reference more than one compound.
func WithStrictResolution(on bool) Option {
	return func(o *options) { o.strict = on }
}

// NewCatalog binds lookups to snap.
func NewCatalog(snap *store.Snapshot, opts ...Option) *Catalog {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Catalog{snap: snap, strict: o.strict}
}

// Snapshot returns the snapshot the catalog reads from.
func (c *Catalog) Snapshot() *store.Snapshot { return c.snap }

// SnapshotSource supplies the current snapshot. *store.Holder implements it.
type SnapshotSource interface {
	Snapshot() *store.Snapshot
}

// Service hands out catalogs bound to the source's current snapshot.
type Service struct {
	src  SnapshotSource
	opts []Option
}

// NewService creates a Service over src.
func NewService(src SnapshotSource, opts ...Option) *Service {
	return &Service{src: src, opts: opts}
}

// Catalog returns a catalog over the current snapshot. Use one catalog for
// a whole chain of lookups so they observe the same data.
func (s *Service) Catalog() *Catalog {
	return NewCatalog(s.src.Snapshot(), s.opts...)
}

// requireCompound returns the compound record or CodeCompoundNotFound.
func (c *Catalog) requireCompound(id chem.CompoundID) (chem.Compound, error) {
	comp, ok := c.snap.Compound(id)
	if !ok {
		return chem.Compound{}, compoundIDNotFound(id)
	}
	return comp, nil
}
