package modtable

import "fmt"

// Info describes one catalog entry for listing callers.
type Info struct {
	Name       string
	Reversible bool
	Schema     Schema
}

// catalog holds the registered tables in registration order. It is
// populated by init below and read-only afterward, so concurrent
// lookups need no locking.
var catalog struct {
	order  []string
	byName map[string]Table
}

func init() {
	catalog.byName = make(map[string]Table)
	for _, t := range []Table{
		&linearTable{name: "default", offsets: [4]int{-1, 1, 2, 3}},
		&linearTable{name: "increment", offsets: [4]int{0, 2, 4, 6}},
		&customTable{},
		&chromaticTable{},
		&rhythmicTable{},
		&harmonicTable{},
		&modalTable{},
		&octaveTable{},
	} {
		register(t)
	}
}

func register(t Table) {
	name := t.Name()
	if _, dup := catalog.byName[name]; dup {
		panic(fmt.Sprintf("modtable: duplicate table %q", name))
	}
	catalog.order = append(catalog.order, name)
	catalog.byName[name] = t
}

// Lookup resolves a table by name, failing with UNKNOWN_STRATEGY when
// the catalog has no such entry.
func Lookup(name string) (Table, error) {
	t, ok := catalog.byName[name]
	if !ok {
		return nil, &SelectionError{
			Code:    ErrCodeUnknownTable,
			Table:   name,
			Message: fmt.Sprintf("unknown mod table %q (available: %v)", name, catalog.order),
		}
	}
	return t, nil
}

// List returns the catalog in registration order.
func List() []Info {
	infos := make([]Info, 0, len(catalog.order))
	for _, name := range catalog.order {
		t := catalog.byName[name]
		infos = append(infos, Info{Name: name, Reversible: t.Reversible(), Schema: t.Schema()})
	}
	return infos
}

// Names returns the catalog names in registration order.
func Names() []string {
	out := make([]string, len(catalog.order))
	copy(out, catalog.order)
	return out
}

// Group expands a selection group name into table names: "all" is the
// whole catalog, "music" the musical tables. Unknown groups return
// false.
func Group(name string) ([]string, bool) {
	switch name {
	case "all":
		return Names(), true
	case "music":
		return []string{"chromatic", "rhythmic", "harmonic", "modal", "octave"}, true
	default:
		return nil, false
	}
}
