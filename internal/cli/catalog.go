package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/phasedb/internal/lookup"
	"github.com/roach88/phasedb/internal/store"
	"github.com/roach88/phasedb/internal/units"
)

// openCatalog loads the configured database and returns a catalog over it.
func (o *RootOptions) openCatalog(ctx context.Context) (*lookup.Catalog, error) {
	holder, err := store.NewHolder(ctx, store.FileLoader(o.Database))
	if err != nil {
		return nil, err
	}
	svc := lookup.NewService(holder, lookup.WithStrictResolution(o.Strict))
	return svc.Catalog(), nil
}

// selection holds the --index/--all flags shared by the property commands.
type selection struct {
	Index int
	All   bool
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.Index, "index", 0, "ordinal of the value when several are stored")
	cmd.Flags().BoolVar(&s.All, "all", false, "show every stored value")
}

// entries returns every value when All is set, otherwise the one at Index.
func entries[T any, V fmt.Stringer](s selection, many func() ([]T, error), one func(int) (T, error), view func(T) (V, error)) ([]Entry[V], error) {
	if !s.All {
		v, err := one(s.Index)
		if err != nil {
			return nil, err
		}
		out, err := view(v)
		if err != nil {
			return nil, err
		}
		return []Entry[V]{{Index: s.Index, Value: out}}, nil
	}

	all, err := many()
	if err != nil {
		return nil, err
	}
	out := make([]Entry[V], 0, len(all))
	for i, v := range all {
		vv, err := view(v)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry[V]{Index: i, Value: vv})
	}
	return out, nil
}

// quantityIn returns a view converter to unit symbol, or the stored unit
// when symbol is empty.
func quantityIn(symbol string) (func(units.Quantity) (QuantityView, error), error) {
	if symbol == "" {
		return func(q units.Quantity) (QuantityView, error) {
			return newQuantityView(q), nil
		}, nil
	}
	u, err := units.Parse(symbol)
	if err != nil {
		return nil, err
	}
	return func(q units.Quantity) (QuantityView, error) {
		c, err := q.To(u)
		if err != nil {
			return QuantityView{}, err
		}
		return newQuantityView(c), nil
	}, nil
}
