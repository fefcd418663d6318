package mapping

import (
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Duplicates holds, per category, the identifiers that occur more than once.
// Every category of the document has an entry, possibly empty.
type Duplicates map[Category]sets.Set[string]

// Valid reports whether no category has a duplicate.
func (d Duplicates) Valid() bool {
	for _, s := range d {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}

// Len is the total number of duplicated identifiers over all categories.
func (d Duplicates) Len() int {
	total := 0
	for _, s := range d {
		total += s.Len()
	}
	return total
}

// Categories returns the categories present in d in report order.
func (d Duplicates) Categories() []Category {
	categories := []Category{}
	for _, c := range Categories() {
		if _, ok := d[c]; ok {
			categories = append(categories, c)
		}
	}
	return categories
}

// DetectDuplicates finds the repeated identifiers of every category. The
// categories are independent and are scanned concurrently.
func DetectDuplicates(doc *Document) Duplicates {
	return detect(doc, true)
}

func detect(doc *Document, concurrent bool) Duplicates {
	categories := Categories()
	found := make([]sets.Set[string], len(categories))

	scan := func(i int) {
		if categories[i] == NetworkCategory {
			found[i] = networkDuplicates(doc.Networks())
			return
		}
		found[i] = nameDuplicates(doc.Names(categories[i]))
	}

	if concurrent {
		var g errgroup.Group
		for i := range categories {
			g.Go(func() error {
				scan(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range categories {
			scan(i)
		}
	}

	res := make(Duplicates, len(categories))
	for i, c := range categories {
		res[c] = found[i]
	}
	return res
}

// nameDuplicates unions the repeated primary names and the repeated secondary
// names. The two sides are checked independently.
func nameDuplicates(rows []NameMapping) sets.Set[string] {
	dups := sets.New[string]()
	collect(dups, rows, func(r NameMapping) string { return r.PrimaryName }, identity)
	collect(dups, rows, func(r NameMapping) string { return r.SecondaryName }, identity)
	return dups
}

// profileNetwork compares the profile + network pair field by field, so that
// ("a_b", "c") and ("a", "b_c") stay distinct although they print the same.
type profileNetwork struct {
	profile string
	network string
}

func (p profileNetwork) String() string {
	return p.profile + "_" + p.network
}

// networkDuplicates checks four dimensions: the profile + network pair on each
// side and the profile id on each side.
func networkDuplicates(rows []NetworkMapping) sets.Set[string] {
	dups := sets.New[string]()
	collect(dups, rows, func(r NetworkMapping) profileNetwork {
		return profileNetwork{r.PrimaryProfileName, r.PrimaryNetworkName}
	}, profileNetwork.String)
	collect(dups, rows, func(r NetworkMapping) profileNetwork {
		return profileNetwork{r.SecondaryProfileName, r.SecondaryNetworkName}
	}, profileNetwork.String)
	collect(dups, rows, func(r NetworkMapping) string { return r.PrimaryProfileID }, identity)
	collect(dups, rows, func(r NetworkMapping) string { return r.SecondaryProfileID }, identity)
	return dups
}

// collect adds to dups the formatted keys that occur more than once in rows.
func collect[R any, K comparable](dups sets.Set[string], rows []R, key func(R) K, format func(K) string) {
	seen := sets.New[K]()
	for _, r := range rows {
		k := key(r)
		if seen.Has(k) {
			dups.Insert(format(k))
			continue
		}
		seen.Insert(k)
	}
}

func identity(s string) string {
	return s
}
