// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Entity identifies an entity of a [World]. The zero value is no entity.
type Entity uint32

// Store is a container for the components of type T, iterated in the
// order in which entities first received the component.
type Store[T any] struct {
	components map[Entity]*T
	entities   []Entity
}

// NewStore creates a new component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{components: make(map[Entity]*T)}
}

// Set inserts or replaces the component of an entity.
func (s *Store[T]) Set(e Entity, val T) *T {
	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	c := &val
	s.components[e] = c
	return c
}

// Get returns the component of an entity, which can be modified in place.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	c, ok := s.components[e]
	return c, ok
}

// Has returns whether the entity has this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component of an entity, keeping the order of the rest.
func (s *Store[T]) Remove(e Entity) {
	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// Entities returns the entities with this component in insertion order.
// The slice must not be modified.
func (s *Store[T]) Entities() []Entity {
	return s.entities
}

// Len returns number of entities with this component
func (s *Store[T]) Len() int {
	return len(s.entities)
}
