package registry

import (
	"errors"
	"fmt"
	"sort"

	"restmapper/internal/descriptor"
	"restmapper/internal/match"
)

// maxSuggestions bounds the "did you mean" list on unknown names.
const maxSuggestions = 3

// Registry is the name -> descriptor table.
type Registry struct {
	objects map[string]*descriptor.Object
	frozen  bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		objects: make(map[string]*descriptor.Object),
	}
}

// Register adds obj under its name.
func (r *Registry) Register(obj *descriptor.Object) error {
	if r.frozen {
		return fmt.Errorf("register %q: %w", obj.Name(), ErrFrozen)
	}

	if _, ok := r.objects[obj.Name()]; ok {
		return &DuplicateObjectError{Object: obj.Name()}
	}

	r.objects[obj.Name()] = obj
	log.Debugf("registry: registered %s object %s with %d fields", obj.Kind(), obj.Name(), obj.Len())

	return nil
}

// Resolve returns the descriptor registered under name.
func (r *Registry) Resolve(name string) (*descriptor.Object, error) {
	obj, ok := r.objects[name]
	if !ok {
		return nil, &UnknownObjectError{Object: name, Suggestions: r.suggest(name)}
	}

	return obj, nil
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.objects))
	for n := range r.objects {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// TopLevel returns the names of top-level objects, sorted.
func (r *Registry) TopLevel() []string {
	var names []string

	for n, obj := range r.objects {
		if obj.IsTopLevel() {
			names = append(names, n)
		}
	}

	sort.Strings(names)

	return names
}

// Freeze seals the registry. Further Register calls fail with ErrFrozen.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

func (r *Registry) suggest(name string) []string {
	return match.Suggest(name, r.Names(), maxSuggestions)
}

const (
	unvisited = iota
	onStack
	done
)

// ValidateGraph checks the nested reference graph. It walks depth-first
// from every top-level object, then from any nested object not reached
// that way, and fails with *UnknownObjectError on a dangling reference or
// *CyclicReferenceError when a reference leads back to an object still on
// the traversal stack. The registry is not modified.
func (r *Registry) ValidateGraph() error {
	state := make(map[string]int, len(r.objects))

	var stack []string

	var visit func(name string) error

	visit = func(name string) error {
		state[name] = onStack
		stack = append(stack, name)

		obj := r.objects[name]
		for i := range obj.Len() {
			f := obj.FieldAt(i)

			ref := f.NestedRef()
			if ref == "" {
				continue
			}

			if _, ok := r.objects[ref]; !ok {
				return &UnknownObjectError{
					Object:      ref,
					Referrer:    name,
					Field:       f.WireName(),
					Suggestions: r.suggest(ref),
				}
			}

			switch state[ref] {
			case onStack:
				return &CyclicReferenceError{
					Cycle:  cycleFrom(stack, ref),
					Object: name,
					Field:  f.WireName(),
				}
			case unvisited:
				if err := visit(ref); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done

		return nil
	}

	roots := append(r.TopLevel(), r.Names()...)
	for _, name := range roots {
		if state[name] != unvisited {
			continue
		}

		if err := visit(name); err != nil {
			return err
		}
	}

	log.Debugf("registry: validated reference graph of %d objects", len(r.objects))

	return nil
}

// cycleFrom returns the stack suffix starting at ref, closed with ref.
func cycleFrom(stack []string, ref string) []string {
	for i, n := range stack {
		if n == ref {
			cycle := make([]string, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)

			return append(cycle, ref)
		}
	}

	return []string{ref, ref}
}

// DependencyOrder returns all object names so that every object comes
// after the objects it references. Among independent objects the order
// is alphabetical.
func (r *Registry) DependencyOrder() ([]string, error) {
	order, err := sortByReferences(r.Names(), r.references)
	if err != nil {
		var unknown *UnknownObjectError
		if errors.As(err, &unknown) {
			unknown.Suggestions = r.suggest(unknown.Object)
		}

		return nil, fmt.Errorf("dependency order: %w", err)
	}

	return order, nil
}

// references lists the nested field edges of an object in field order.
func (r *Registry) references(name string) []reference {
	obj := r.objects[name]

	var refs []reference

	for i := range obj.Len() {
		f := obj.FieldAt(i)
		if ref := f.NestedRef(); ref != "" {
			refs = append(refs, reference{Field: f.WireName(), Object: ref})
		}
	}

	return refs
}
