package game

import (
	"errors"
	"fmt"
	"sort"
)

// Registry holds the immutable scene templates of a story and the
// per-navigation instances built from them.
type Registry struct {
	templates map[string]*Scene
	instances map[string]*Scene
}

// NewRegistry indexes scenes by key. A scene with an empty ID takes its
// key.
func NewRegistry(scenes map[string]*Scene) *Registry {
	r := &Registry{
		templates: make(map[string]*Scene, len(scenes)),
		instances: map[string]*Scene{},
	}
	for id, sc := range scenes {
		if sc == nil {
			continue
		}
		if sc.ID == "" {
			sc.ID = id
		}
		r.templates[id] = sc
	}
	return r
}

// Fork returns a registry sharing r's templates with an empty instance
// cache, one per play session.
func (r *Registry) Fork() *Registry {
	return &Registry{templates: r.templates, instances: map[string]*Scene{}}
}

// Template returns the static scene stored under id.
func (r *Registry) Template(id string) (*Scene, bool) {
	sc, ok := r.templates[id]
	return sc, ok
}

// Lookup returns the live instance for id, falling back to the template.
func (r *Registry) Lookup(id string) (*Scene, bool) {
	if sc, ok := r.instances[id]; ok {
		return sc, true
	}
	return r.Template(id)
}

// Has reports whether id can be navigated to.
func (r *Registry) Has(id string) bool {
	if IsDynamic(id) {
		return true
	}
	_, ok := r.templates[id]
	return ok
}

func (r *Registry) store(id string, sc *Scene) {
	r.instances[id] = sc
}

// Reset drops every instance. Templates are untouched.
func (r *Registry) Reset() {
	r.instances = map[string]*Scene{}
}

// IDs lists template ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate reports every navigation target that resolves to nothing.
func (r *Registry) Validate() error {
	var errs []error
	for _, id := range r.IDs() {
		sc := r.templates[id]
		for _, ch := range sc.Choices {
			if ch.Next != "" && !r.Has(ch.Next) {
				errs = append(errs, fmt.Errorf("scene %s: choice %q: %w", id, ch.Text, &SceneError{ID: ch.Next, From: id}))
			}
		}
		if sc.AutoChange != nil && !r.Has(sc.AutoChange.Next) {
			errs = append(errs, fmt.Errorf("scene %s: auto change: %w", id, &SceneError{ID: sc.AutoChange.Next, From: id}))
		}
	}
	return errors.Join(errs...)
}
