package catalog

import (
	"errors"
	"fmt"

	"restmapper/internal/descriptor"
	"restmapper/internal/diagnostic"
	"restmapper/internal/registry"
)

// Build validates f and registers its objects into a new registry. The
// returned registry is graph-checked and frozen; it is nil whenever the
// diagnostics hold errors.
func Build(f *File) (*registry.Registry, *diagnostic.Diagnostics) {
	diags := Validate(f)
	if diags.HasErrors() {
		return nil, diags
	}

	reg := registry.New()

	for i := range f.Objects {
		obj, err := f.Objects[i].descriptor()
		if err != nil {
			diags.AddError("invalid_object", err.Error(), f.Objects[i].Name, "")
			continue
		}

		if err := reg.Register(obj); err != nil {
			diags.AddError("register_failed", err.Error(), obj.Name(), "")
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	if err := reg.ValidateGraph(); err != nil {
		var (
			cycle   *registry.CyclicReferenceError
			unknown *registry.UnknownObjectError
		)

		switch {
		case errors.As(err, &cycle):
			diags.AddError("cyclic_reference", err.Error(), cycle.Object, cycle.Field)
		case errors.As(err, &unknown):
			diags.AddError("unknown_object", err.Error(), unknown.Referrer, unknown.Field, unknown.Suggestions...)
		default:
			diags.AddError("invalid_graph", err.Error(), "", "")
		}

		return nil, diags
	}

	reg.Freeze()

	return reg, diags
}

func (o *Object) descriptor() (*descriptor.Object, error) {
	kind, err := descriptor.ParseObjectKind(o.Kind)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", o.Name, err)
	}

	fields := make([]descriptor.Field, 0, len(o.Fields))

	for i := range o.Fields {
		f, err := o.Fields[i].descriptor()
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", o.Name, err)
		}

		fields = append(fields, f)
	}

	return descriptor.NewObject(o.Name, kind, fields,
		descriptor.WithDescription(o.Description),
		descriptor.WithRelated(o.Related...),
		descriptor.WithCustomFieldSuffix(o.CustomSuffix))
}

func (f *Field) descriptor() (descriptor.Field, error) {
	var opts []descriptor.FieldOption

	if f.Label != "" {
		opts = append(opts, descriptor.WithDisplayName(f.Label))
	}

	if f.Type.Elem != descriptor.TypeInvalid {
		opts = append(opts, descriptor.WithElem(f.Type.Elem))
	}

	if f.Type.Ref != "" {
		opts = append(opts, descriptor.WithNested(f.Type.Ref))
	}

	if f.Nullable != nil && !*f.Nullable {
		opts = append(opts, descriptor.NotNull())
	}

	if f.Custom {
		opts = append(opts, descriptor.AsCustom())
	}

	if f.Update {
		opts = append(opts, descriptor.Writable())
	}

	if f.Select {
		opts = append(opts, descriptor.Selectable())
	}

	return descriptor.NewField(f.Name, f.Type.Type, opts...)
}
