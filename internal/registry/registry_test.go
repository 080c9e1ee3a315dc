package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restmapper/internal/descriptor"
)

func str(name string) descriptor.Field {
	return descriptor.MustField(name, descriptor.TypeString)
}

func ref(name, object string) descriptor.Field {
	return descriptor.MustField(name, descriptor.TypeNested, descriptor.WithNested(object))
}

func refs(name, object string) descriptor.Field {
	return descriptor.MustField(name, descriptor.TypeArray,
		descriptor.WithElem(descriptor.TypeNested), descriptor.WithNested(object))
}

func object(t *testing.T, name string, kind descriptor.ObjectKind, fields ...descriptor.Field) *descriptor.Object {
	t.Helper()

	obj, err := descriptor.NewObject(name, kind, fields)
	require.NoError(t, err)

	return obj
}

// buildRegistry registers objects given as name -> referenced names. Names
// starting with a capital "T" are top level.
func buildRegistry(t *testing.T, graph map[string][]string) *Registry {
	t.Helper()

	r := New()

	for name, targets := range graph {
		kind := descriptor.KindNested
		if name[0] == 'T' {
			kind = descriptor.KindTopLevel
		}

		fields := []descriptor.Field{str("id")}
		for _, target := range targets {
			fields = append(fields, refs("to"+target, target))
		}

		require.NoError(t, r.Register(object(t, name, kind, fields...)))
	}

	return r
}

func TestRegisterResolve(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(object(t, "OrderItem", descriptor.KindNested, str("id"))))
	require.NoError(t, r.Register(object(t, "Order", descriptor.KindTopLevel, refs("items", "OrderItem"))))

	obj, err := r.Resolve("Order")
	require.NoError(t, err)
	assert.Equal(t, "Order", obj.Name())

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Order", "OrderItem"}, r.Names())
	assert.Equal(t, []string{"Order"}, r.TopLevel())
}

func TestRegisterDuplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(object(t, "Order", descriptor.KindTopLevel)))

	err := r.Register(object(t, "Order", descriptor.KindNested))

	var dup *DuplicateObjectError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Order", dup.Object)
}

func TestResolveUnknownSuggests(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(object(t, "OrderItem", descriptor.KindNested)))

	_, err := r.Resolve("OrderItm")

	var unknown *UnknownObjectError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "OrderItm", unknown.Object)
	assert.Equal(t, []string{"OrderItem"}, unknown.Suggestions)
	assert.Contains(t, err.Error(), "did you mean OrderItem")
}

func TestFreeze(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(object(t, "A", descriptor.KindTopLevel)))
	r.Freeze()
	assert.True(t, r.Frozen())

	err := r.Register(object(t, "B", descriptor.KindTopLevel))
	require.ErrorIs(t, err, ErrFrozen)

	_, err = r.Resolve("A")
	require.NoError(t, err)
}

func TestValidateGraphAcyclic(t *testing.T) {
	tests := []struct {
		name  string
		graph map[string][]string
	}{
		{name: "empty", graph: map[string][]string{}},
		{name: "single", graph: map[string][]string{"TOrder": nil}},
		{name: "chain", graph: map[string][]string{"TOrder": {"Action"}, "Action": {"Item"}, "Item": nil}},
		{name: "diamond", graph: map[string][]string{
			"TOrder": {"Left", "Right"},
			"Left":   {"Leaf"},
			"Right":  {"Leaf"},
			"Leaf":   nil,
		}},
		{name: "shared by two roots", graph: map[string][]string{
			"TA":     {"Shared"},
			"TB":     {"Shared"},
			"Shared": nil,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildRegistry(t, tt.graph)
			require.NoError(t, r.ValidateGraph())
		})
	}
}

func TestValidateGraphCycles(t *testing.T) {
	tests := []struct {
		name  string
		graph map[string][]string
		cycle []string
	}{
		{name: "self reference", graph: map[string][]string{"TNode": {"TNode"}}, cycle: []string{"TNode", "TNode"}},
		{name: "two nodes", graph: map[string][]string{"TA": {"B"}, "B": {"TA"}}, cycle: []string{"TA", "B", "TA"}},
		{name: "deep", graph: map[string][]string{
			"TRoot": {"A"},
			"A":     {"B"},
			"B":     {"C"},
			"C":     {"A"},
		}, cycle: []string{"A", "B", "C", "A"}},
		{name: "among nested only", graph: map[string][]string{
			"TRoot": nil,
			"X":     {"Y"},
			"Y":     {"X"},
		}, cycle: []string{"X", "Y", "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildRegistry(t, tt.graph)

			err := r.ValidateGraph()

			var cyc *CyclicReferenceError
			require.ErrorAs(t, err, &cyc)
			assert.Equal(t, tt.cycle, cyc.Cycle)
			assert.Equal(t, tt.cycle[len(tt.cycle)-2], cyc.Object)
			assert.Equal(t, "to"+tt.cycle[len(tt.cycle)-1], cyc.Field)
		})
	}
}

func TestValidateGraphDanglingReference(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(object(t, "OrderItem", descriptor.KindNested, str("id"))))
	require.NoError(t, r.Register(object(t, "OrderAction", descriptor.KindTopLevel, refs("orderItems", "OrderItm"))))

	err := r.ValidateGraph()

	var unknown *UnknownObjectError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "OrderItm", unknown.Object)
	assert.Equal(t, "OrderAction", unknown.Referrer)
	assert.Equal(t, "orderItems", unknown.Field)
	assert.Equal(t, []string{"OrderItem"}, unknown.Suggestions)
}

func TestValidateGraphDoesNotMutate(t *testing.T) {
	r := buildRegistry(t, map[string][]string{"TA": {"B"}, "B": nil})
	before := r.Names()

	require.NoError(t, r.ValidateGraph())
	require.NoError(t, r.ValidateGraph())

	assert.Equal(t, before, r.Names())
	assert.False(t, r.Frozen())
}

func TestDependencyOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(object(t, "Order", descriptor.KindTopLevel, refs("actions", "OrderAction"), ref("account", "Account"))))
	require.NoError(t, r.Register(object(t, "OrderAction", descriptor.KindNested, refs("items", "OrderItem"))))
	require.NoError(t, r.Register(object(t, "OrderItem", descriptor.KindNested, str("id"))))
	require.NoError(t, r.Register(object(t, "Account", descriptor.KindNested, str("id"))))

	order, err := r.DependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"Account", "OrderItem", "OrderAction", "Order"}, order)
}

func TestDependencyOrderErrors(t *testing.T) {
	r := buildRegistry(t, map[string][]string{"TA": {"B"}, "B": {"TA"}})

	_, err := r.DependencyOrder()

	var cyclic *CyclicReferenceError
	require.ErrorAs(t, err, &cyclic)
	assert.Equal(t, []string{"B", "TA", "B"}, cyclic.Cycle)
	assert.Equal(t, "TA", cyclic.Object)
	assert.Equal(t, "toB", cyclic.Field)

	r = buildRegistry(t, map[string][]string{"TA": {"Missing"}})

	_, err = r.DependencyOrder()

	var unknown *UnknownObjectError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Missing", unknown.Object)
}
