package plugin

import "sort"

// ID is a dense plugin identifier. IDs are assigned in ascending name
// order, so sorting IDs sorts names.
type ID uint32

type Index struct {
	NameToID map[string]ID
	IDToName []string
}

// BuildIndex collects every name a registry mentions, declared plugins
// and referenced dependencies alike, and assigns IDs by sorted name.
func BuildIndex(reg *Registry) Index {
	uniq := make(map[string]struct{}, len(reg.Decls))
	for i := range reg.Decls {
		d := &reg.Decls[i]
		uniq[d.Name] = struct{}{}
		for _, dep := range d.Dependencies {
			if dep != "" {
				uniq[dep] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]ID, len(names))
	for i, name := range names {
		nameToID[name] = ID(i)
	}
	return Index{NameToID: nameToID, IDToName: names}
}
