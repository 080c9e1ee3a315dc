package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphRefs turns name -> referenced names into a refsOf function whose
// field names are "to" + target.
func graphRefs(graph map[string][]string) func(string) []reference {
	return func(name string) []reference {
		var out []reference
		for _, target := range graph[name] {
			out = append(out, reference{Field: "to" + target, Object: target})
		}

		return out
	}
}

func TestSortByReferencesOrder(t *testing.T) {
	graph := map[string][]string{
		"Order":       {"OrderAction", "OrderAction"},
		"OrderAction": {"OrderItem"},
		"OrderItem":   nil,
	}

	order, err := sortByReferences([]string{"Order", "OrderAction", "OrderItem"}, graphRefs(graph))
	require.NoError(t, err)
	assert.Equal(t, []string{"OrderItem", "OrderAction", "Order"}, order)
}

func TestSortByReferencesAlphabeticalWhenReady(t *testing.T) {
	graph := map[string][]string{"A": {"D"}}

	order, err := sortByReferences([]string{"A", "B", "C", "D"}, graphRefs(graph))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D", "A"}, order)
}

func TestSortByReferencesCycle(t *testing.T) {
	graph := map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"B"},
		"D": {"A"},
	}

	_, err := sortByReferences([]string{"A", "B", "C", "D"}, graphRefs(graph))

	var cyclic *CyclicReferenceError
	require.ErrorAs(t, err, &cyclic)
	assert.Equal(t, []string{"B", "C", "B"}, cyclic.Cycle)
	assert.Equal(t, "C", cyclic.Object)
	assert.Equal(t, "toB", cyclic.Field)
}

func TestSortByReferencesUnknown(t *testing.T) {
	_, err := sortByReferences([]string{"A"}, graphRefs(map[string][]string{"A": {"Missing"}}))

	var unknown *UnknownObjectError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Missing", unknown.Object)
	assert.Equal(t, "A", unknown.Referrer)
	assert.Equal(t, "toMissing", unknown.Field)

	order, err := sortByReferences(nil, graphRefs(nil))
	require.NoError(t, err)
	assert.Empty(t, order)
}
