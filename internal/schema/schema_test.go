package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restmapper/internal/catalog"
	"restmapper/internal/descriptor"
	"restmapper/internal/registry"
)

func mustObject(t *testing.T, name string, kind descriptor.ObjectKind, fields ...descriptor.Field) *descriptor.Object {
	t.Helper()

	obj, err := descriptor.NewObject(name, kind, fields)
	require.NoError(t, err)

	return obj
}

// testRegistry holds a trimmed subscription-like graph.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r := registry.New()

	require.NoError(t, r.Register(mustObject(t, "TermItem", descriptor.KindNested,
		descriptor.MustField("period", descriptor.TypeInt, descriptor.Writable(), descriptor.Selectable()),
		descriptor.MustField("periodType", descriptor.TypeString, descriptor.Writable()),
		descriptor.MustField("startDate", descriptor.TypeTimestamp, descriptor.WithDisplayName("Start Date")),
	)))

	require.NoError(t, r.Register(mustObject(t, "Subscription", descriptor.KindTopLevel,
		descriptor.MustField("id", descriptor.TypeString, descriptor.Selectable()),
		descriptor.MustField("initialTerm", descriptor.TypeNested,
			descriptor.WithNested("TermItem"), descriptor.Writable()),
		descriptor.MustField("renewalTerms", descriptor.TypeArray,
			descriptor.WithElem(descriptor.TypeNested), descriptor.WithNested("TermItem"), descriptor.Writable()),
		descriptor.MustField("tags", descriptor.TypeArray, descriptor.WithElem(descriptor.TypeString)),
		descriptor.MustField("notes", descriptor.TypeString, descriptor.Writable()),
	)))

	return r
}

func TestDeriveDeclaredOrder(t *testing.T) {
	d := NewDeriver(testRegistry(t))

	s, err := d.Derive("Subscription")
	require.NoError(t, err)

	assert.Equal(t, "Subscription", s.Object)
	assert.Equal(t, []string{"id", "initialTerm", "renewalTerms", "tags", "notes"}, s.Names())
	assert.Equal(t, []string{"initialTerm", "renewalTerms", "notes"}, s.WritableNames())
	assert.Empty(t, s.Collisions)

	for _, f := range s.Fields {
		assert.True(t, f.Nullable, f.Name)
	}

	term, ok := s.Field("initialTerm")
	require.True(t, ok)
	require.True(t, term.IsNested())
	assert.Equal(t, []string{"period", "periodType", "startDate"}, term.Nested.Names())

	start, ok := term.Nested.Field("startDate")
	require.True(t, ok)
	assert.Equal(t, "Start Date", start.Label)

	renewals, ok := s.Field("renewalTerms")
	require.True(t, ok)
	assert.True(t, renewals.IsArray())
	assert.Equal(t, "array|TermItem", renewals.TypeString())

	tags, ok := s.Field("tags")
	require.True(t, ok)
	assert.False(t, tags.IsNested())
	assert.Equal(t, "array|string", tags.TypeString())

	assert.Equal(t, -1, s.Index("missing"))
	assert.Equal(t, 4, s.Index("notes"))
}

func TestDeriveIsDeterministic(t *testing.T) {
	d := NewDeriver(testRegistry(t))
	custom := []CustomField{
		{Name: "region__c", Type: descriptor.TypeString},
		{Name: "seats__c", Type: descriptor.TypeLong, Label: "Seats"},
	}

	first, err := d.Derive("Subscription", custom...)
	require.NoError(t, err)

	second, err := d.Derive("Subscription", custom...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestDeriveCustomFields(t *testing.T) {
	d := NewDeriver(testRegistry(t))

	s, err := d.Derive("TermItem",
		CustomField{Name: "billing__c", Type: descriptor.TypeBoolean, Label: "Billing"},
		CustomField{Name: "note__c", Type: descriptor.TypeString},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"period", "periodType", "startDate", "billing__c", "note__c"}, s.Names())

	billing, ok := s.Field("billing__c")
	require.True(t, ok)
	assert.True(t, billing.Custom)
	assert.True(t, billing.Writable)
	assert.True(t, billing.Selectable)
	assert.True(t, billing.Nullable)
	assert.Equal(t, "Billing", billing.Label)

	note, ok := s.Field("note__c")
	require.True(t, ok)
	assert.Equal(t, "note__c", note.Label)
}

func TestDeriveDeclaredFieldWins(t *testing.T) {
	d := NewDeriver(testRegistry(t))

	s, err := d.Derive("TermItem",
		CustomField{Name: "period", Type: descriptor.TypeString},
		CustomField{Name: "extra__c", Type: descriptor.TypeString},
		CustomField{Name: "extra__c", Type: descriptor.TypeLong},
	)
	require.NoError(t, err)

	period, ok := s.Field("period")
	require.True(t, ok)
	assert.Equal(t, descriptor.TypeInt, period.Type)
	assert.False(t, period.Custom)

	extra, ok := s.Field("extra__c")
	require.True(t, ok)
	assert.Equal(t, descriptor.TypeString, extra.Type)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []Collision{
		{Object: "TermItem", Field: "period", Declared: descriptor.TypeInt, Discovered: descriptor.TypeString},
		{Object: "TermItem", Field: "extra__c", Declared: descriptor.TypeString, Discovered: descriptor.TypeLong, Duplicate: true},
	}, s.Collisions)

	diags := s.Diagnostics()
	assert.False(t, diags.HasErrors())

	all := diags.All()
	require.Len(t, all, 2)
	assert.Equal(t, "custom_field_duplicate", all[0].Code)
	assert.Equal(t, "custom_field_shadowed", all[1].Code)
}

func TestDeriveNestedSchemasHaveNoCustomFields(t *testing.T) {
	d := NewDeriver(testRegistry(t))

	s, err := d.Derive("Subscription", CustomField{Name: "region__c", Type: descriptor.TypeString})
	require.NoError(t, err)

	term, _ := s.Field("initialTerm")
	_, ok := term.Nested.Field("region__c")
	assert.False(t, ok)
}

func TestDeriveRejectsNonPrimitiveCustom(t *testing.T) {
	d := NewDeriver(testRegistry(t))

	_, err := d.Derive("TermItem", CustomField{Name: "bad", Type: descriptor.TypeNested})
	require.ErrorIs(t, err, ErrInvalidCustomField)

	_, err = d.Derive("TermItem", CustomField{Type: descriptor.TypeString})
	require.ErrorIs(t, err, ErrInvalidCustomField)
}

func TestDeriveUnknownObject(t *testing.T) {
	d := NewDeriver(testRegistry(t))

	_, err := d.Derive("Subscriptoin")

	var unknown *registry.UnknownObjectError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Suggestions, "Subscription")
}

func TestDeriveDetectsCycle(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(mustObject(t, "A", descriptor.KindTopLevel,
		descriptor.MustField("b", descriptor.TypeNested, descriptor.WithNested("B")))))
	require.NoError(t, r.Register(mustObject(t, "B", descriptor.KindNested,
		descriptor.MustField("a", descriptor.TypeArray,
			descriptor.WithElem(descriptor.TypeNested), descriptor.WithNested("A")))))

	_, err := NewDeriver(r).Derive("A")

	var cycle *registry.CyclicReferenceError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []string{"A", "B", "A"}, cycle.Cycle)
	assert.Equal(t, "B", cycle.Object)
	assert.Equal(t, "a", cycle.Field)
}

func TestDeriveCache(t *testing.T) {
	d := NewDeriver(testRegistry(t), WithCache(0))
	region := CustomField{Name: "region__c", Type: descriptor.TypeString}

	first, err := d.Derive("Subscription", region)
	require.NoError(t, err)

	second, err := d.Derive("Subscription", region)
	require.NoError(t, err)
	assert.Same(t, first, second)

	plain, err := d.Derive("Subscription")
	require.NoError(t, err)
	assert.NotSame(t, first, plain)
	assert.Equal(t, first.Len()-1, plain.Len())
}

func TestDeriveCacheKeysDoNotCollide(t *testing.T) {
	d := NewDeriver(testRegistry(t), WithCache(0))

	tricky, err := d.Derive("Subscription",
		CustomField{Name: "a", Type: descriptor.TypeString, Label: "x|b:string|"})
	require.NoError(t, err)
	assert.Equal(t, "x|b:string|", tricky.Fields[tricky.Index("a")].Label)

	two, err := d.Derive("Subscription",
		CustomField{Name: "a", Type: descriptor.TypeString, Label: "x"},
		CustomField{Name: "b", Type: descriptor.TypeString})
	require.NoError(t, err)
	assert.NotSame(t, tricky, two)

	_, ok := two.Field("b")
	assert.True(t, ok)
	assert.Equal(t, 2, d.CacheLen())
}

func TestDeriveCacheEvicts(t *testing.T) {
	d := NewDeriver(testRegistry(t), WithCache(2))

	first, err := d.Derive("Subscription", CustomField{Name: "f0", Type: descriptor.TypeString})
	require.NoError(t, err)

	for i := range 10 {
		_, err := d.Derive("Subscription", CustomField{Name: fmt.Sprintf("f%d", i+1), Type: descriptor.TypeString})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, d.CacheLen())

	again, err := d.Derive("Subscription", CustomField{Name: "f0", Type: descriptor.TypeString})
	require.NoError(t, err)
	assert.NotSame(t, first, again)
	assert.Equal(t, first.Names(), again.Names())

	assert.Zero(t, NewDeriver(testRegistry(t)).CacheLen())
}

func TestDeriveCustomFieldSuffix(t *testing.T) {
	reg, err := catalog.Default()
	require.NoError(t, err)

	d := NewDeriver(reg)

	s, err := d.Derive("PaymentObjectNSFields",
		CustomField{Name: "subsidiary__NS", Type: descriptor.TypeString},
		CustomField{Name: "region__c", Type: descriptor.TypeString})
	require.NoError(t, err)

	assert.Equal(t, "__NS", s.CustomSuffix)

	origin, ok := s.Field("origin__NS")
	require.True(t, ok)
	assert.True(t, origin.Custom)

	sub, ok := s.Field("subsidiary__NS")
	require.True(t, ok)
	assert.True(t, sub.Custom)

	_, ok = s.Field("region__c")
	assert.False(t, ok)
	require.Len(t, s.Filtered, 1)
	assert.Equal(t, "region__c", s.Filtered[0].Name)

	diags := s.Diagnostics()
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "custom_field_filtered", diags.Infos[0].Code)
	assert.Equal(t, "region__c", diags.Infos[0].Field)

	payment, err := d.Derive("Payment")
	require.NoError(t, err)

	netSuite, ok := payment.Field("netSuite")
	require.True(t, ok)
	require.NotNil(t, netSuite.Nested)

	for _, f := range netSuite.Nested.Fields {
		assert.True(t, f.Custom, f.Name)
	}
}

func TestParseCustomField(t *testing.T) {
	tests := []struct {
		in      string
		want    CustomField
		wantErr bool
	}{
		{in: "region__c", want: CustomField{Name: "region__c", Type: descriptor.TypeString}},
		{in: "seats__c:long", want: CustomField{Name: "seats__c", Type: descriptor.TypeLong}},
		{in: " flag__c : boolean ", want: CustomField{Name: "flag__c", Type: descriptor.TypeBoolean}},
		{in: "items:array", wantErr: true},
		{in: "x:whatever", wantErr: true},
		{in: ":string", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCustomField(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCustomField)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Name+":"+got.Type.String(), got.String())
		})
	}

	list, err := ParseCustomFields([]string{"a", "b:int"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFormat(t *testing.T) {
	s, err := NewDeriver(testRegistry(t)).Derive("Subscription",
		CustomField{Name: "region__c", Type: descriptor.TypeString})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Format(&buf))

	want := `id: string [select]
initialTerm: object|TermItem [update]
  period: int [update,select]
  periodType: string [update]
  startDate: timestamp
renewalTerms: array|TermItem [update]
  period: int [update,select]
  periodType: string [update]
  startDate: timestamp
tags: array|string
notes: string [update]
region__c: string [update,select,custom]
`
	assert.Equal(t, want, buf.String())

	buf.Reset()
	s.Dump(&buf)
	assert.Contains(t, buf.String(), "region__c")
}

func TestJSONSchemaValidator(t *testing.T) {
	s, err := NewDeriver(testRegistry(t)).Derive("Subscription")
	require.NoError(t, err)

	doc, err := s.JSONSchema()
	require.NoError(t, err)
	assert.Contains(t, string(doc), MetaSchema)
	assert.Contains(t, string(doc), `"date-time"`)

	v, err := s.Validator()
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, v.ValidateBytes(ctx, []byte(`{
		"id": "S-1",
		"initialTerm": {"period": 12, "periodType": "Month", "startDate": null},
		"renewalTerms": [],
		"tags": ["a", null],
		"notes": null,
		"somethingElse": true
	}`)))

	err = v.ValidateBytes(ctx, []byte(`{"initialTerm": {"period": "twelve"}, "tags": [1]}`))

	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Subscription", invalid.Object)
	assert.NotEmpty(t, invalid.Problems)
}
