package registry

import (
	"maps"
	"slices"
)

// reference is one nested field edge: Field of the referring object
// points at Object.
type reference struct {
	Field  string
	Object string
}

// sortByReferences orders names so that every object follows the objects
// it references. Ready objects are taken alphabetically, so the result is
// deterministic. A reference to a name outside names fails with
// *UnknownObjectError; objects left over once nothing is ready sit on or
// behind a cycle, and one such cycle is returned as *CyclicReferenceError.
func sortByReferences(names []string, refsOf func(name string) []reference) ([]string, error) {
	pending := make(map[string]int, len(names))
	referrers := make(map[string][]string, len(names))

	for _, n := range names {
		pending[n] = 0
	}

	for _, n := range names {
		seen := make(map[string]bool)

		for _, ref := range refsOf(n) {
			if _, ok := pending[ref.Object]; !ok {
				return nil, &UnknownObjectError{Object: ref.Object, Referrer: n, Field: ref.Field}
			}

			if seen[ref.Object] {
				continue
			}

			seen[ref.Object] = true
			pending[n]++
			referrers[ref.Object] = append(referrers[ref.Object], n)
		}
	}

	var ready []string

	for _, n := range names {
		if pending[n] == 0 {
			ready = append(ready, n)
		}
	}

	slices.Sort(ready)

	order := make([]string, 0, len(names))

	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]

		order = append(order, n)
		delete(pending, n)

		for _, r := range referrers[n] {
			pending[r]--
			if pending[r] == 0 {
				at, _ := slices.BinarySearch(ready, r)
				ready = slices.Insert(ready, at, r)
			}
		}
	}

	if len(pending) > 0 {
		return nil, findCycle(pending, refsOf)
	}

	return order, nil
}

// findCycle walks references among the unsorted objects, starting at the
// alphabetically first one. Every unsorted object still references
// another unsorted object, so the walk must come back to a visited name.
func findCycle(unsorted map[string]int, refsOf func(name string) []reference) *CyclicReferenceError {
	at := map[string]int{}
	path := []string{}

	n := slices.Sorted(maps.Keys(unsorted))[0]

	for {
		at[n] = len(path)
		path = append(path, n)

		next := ""

		for _, ref := range refsOf(n) {
			if _, ok := unsorted[ref.Object]; !ok {
				continue
			}

			if i, ok := at[ref.Object]; ok {
				cycle := append(slices.Clone(path[i:]), ref.Object)
				return &CyclicReferenceError{Cycle: cycle, Object: n, Field: ref.Field}
			}

			next = ref.Object

			break
		}

		if next == "" {
			return &CyclicReferenceError{Cycle: path, Object: n}
		}

		n = next
	}
}
