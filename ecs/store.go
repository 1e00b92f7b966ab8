package ecs

// Removable is implemented by every component store so a Registry can clear
// an entity from all stores when it is destroyed.
type Removable interface {
	Remove(Entity)
}

// Store is a typed component container mapping entities to values of kind T.
// Pure data, no behavior. Iteration order is unspecified; ordering that
// matters to callers must live inside the component values themselves.
type Store[T any] struct {
	components map[Entity]T
	entities   []Entity
}

// NewStore returns an empty store for component kind T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[Entity]T, 64),
		entities:   make([]Entity, 0, 64),
	}
}

// Set inserts or overwrites the component for e.
func (s *Store[T]) Set(e Entity, v T) {
	if _, ok := s.components[e]; !ok {
		s.entities = append(s.entities, e)
	}
	s.components[e] = v
}

// Get returns the component for e, if present.
func (s *Store[T]) Get(e Entity) (T, bool) {
	v, ok := s.components[e]
	return v, ok
}

// Has reports whether e has a component in this store.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component for e if present; no-op otherwise.
func (s *Store[T]) Remove(e Entity) {
	if _, ok := s.components[e]; !ok {
		return
	}
	delete(s.components, e)
	for i, ent := range s.entities {
		if ent == e {
			s.entities[i] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
}

// Len returns the number of entities holding this component kind.
func (s *Store[T]) Len() int { return len(s.components) }

// Each calls fn for every (entity, value) pair. fn must not mutate the store.
func (s *Store[T]) Each(fn func(Entity, T)) {
	for _, e := range s.entities {
		fn(e, s.components[e])
	}
}

// Entities returns a snapshot of the entities holding this component kind.
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Registry tracks component stores for bulk cleanup on entity destroy.
type Registry struct {
	stores []Removable
}

// NewRegistry returns an empty store registry.
func NewRegistry() *Registry {
	return &Registry{stores: make([]Removable, 0, 8)}
}

// Register adds a store to the registry.
func (r *Registry) Register(s Removable) {
	r.stores = append(r.stores, s)
}

// RemoveAll clears the entity from every registered store.
func (r *Registry) RemoveAll(e Entity) {
	for _, s := range r.stores {
		s.Remove(e)
	}
}
