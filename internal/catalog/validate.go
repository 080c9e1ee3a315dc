package catalog

import (
	"fmt"
	"strings"

	"restmapper/internal/descriptor"
	"restmapper/internal/diagnostic"
	"restmapper/internal/match"
)

const maxSuggestions = 3

// Validate checks a catalog for structural problems: missing or
// duplicate names, unknown kinds, invalid field declarations and
// references to undeclared objects. Reference cycles are not detected
// here; Build reports them.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("catalog_is_nil", "catalog is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported catalog version %q", f.Version), "", "")
	}

	names := make([]string, 0, len(f.Objects))
	seen := make(map[string]struct{}, len(f.Objects))

	for i := range f.Objects {
		name := f.Objects[i].Name
		if name == "" {
			res.AddError("missing_object_name", fmt.Sprintf("object #%d has no name", i+1), "", "")
			continue
		}

		if _, ok := seen[name]; ok {
			res.AddError("duplicate_object", fmt.Sprintf("object %q declared more than once", name), name, "")
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	referenced := make(map[string]struct{})

	for i := range f.Objects {
		obj := &f.Objects[i]
		if obj.Name == "" {
			continue
		}

		kind, err := descriptor.ParseObjectKind(obj.Kind)
		if err != nil {
			res.AddError("invalid_kind", err.Error(), obj.Name, "")
		}

		if kind == descriptor.KindTopLevel && len(obj.Fields) == 0 {
			res.AddWarning("empty_object", "top level object declares no fields", obj.Name, "")
		}

		for _, rel := range obj.Related {
			if _, ok := seen[rel]; !ok {
				res.AddWarning("unknown_related", fmt.Sprintf("related object %q is not declared", rel),
					obj.Name, "", match.Suggest(rel, names, maxSuggestions)...)
			}
		}

		validateFields(res, obj, seen, names, referenced)

		if obj.CustomSuffix == "" {
			continue
		}

		for _, fl := range obj.Fields {
			if fl.Custom && !strings.HasSuffix(fl.Name, obj.CustomSuffix) {
				res.AddWarning("custom_suffix_mismatch",
					fmt.Sprintf("custom field does not end in %q", obj.CustomSuffix), obj.Name, fl.Name)
			}
		}
	}

	for i := range f.Objects {
		obj := &f.Objects[i]
		if kind, err := descriptor.ParseObjectKind(obj.Kind); err != nil || kind != descriptor.KindNested {
			continue
		}

		if _, ok := referenced[obj.Name]; !ok {
			res.AddInfo("unreferenced_nested", "nested object is not referenced by any field", obj.Name, "")
		}
	}

	return res
}

func validateFields(
	res *diagnostic.Diagnostics,
	obj *Object,
	objects map[string]struct{},
	names []string,
	referenced map[string]struct{},
) {
	seen := make(map[string]struct{}, len(obj.Fields))

	for i := range obj.Fields {
		fd := &obj.Fields[i]

		if fd.Name == "" {
			res.AddError("missing_field_name", fmt.Sprintf("field #%d has no name", i+1), obj.Name, "")
			continue
		}

		if _, ok := seen[fd.Name]; ok {
			res.AddError("duplicate_field", "field declared more than once", obj.Name, fd.Name)
			continue
		}

		seen[fd.Name] = struct{}{}

		if fd.Type.IsZero() {
			res.AddError("missing_type", "field has no type", obj.Name, fd.Name)
			continue
		}

		if _, err := fd.descriptor(); err != nil {
			res.AddError("invalid_field", err.Error(), obj.Name, fd.Name)
			continue
		}

		if fd.Type.Ref == "" {
			continue
		}

		referenced[fd.Type.Ref] = struct{}{}

		if _, ok := objects[fd.Type.Ref]; !ok {
			res.AddError("unknown_object",
				fmt.Sprintf("field references undeclared object %q", fd.Type.Ref),
				obj.Name, fd.Name, match.Suggest(fd.Type.Ref, names, maxSuggestions)...)
		}
	}
}
