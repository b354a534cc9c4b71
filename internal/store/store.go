// Package store keeps the sandbox's products in memory.
package store

import (
	"sort"
	"strconv"
	"sync"

	"github.com/miguelzg1911/product-crud-client/internal/model"
)

type productState struct {
	p   model.Product
	seq uint64
}

// Store is a concurrency-safe products collection that assigns sequential ids.
type Store struct {
	mu     sync.RWMutex
	m      map[model.ID]productState
	lastID uint64
}

func New() *Store {
	return &Store{m: make(map[model.ID]productState)}
}

// List returns every product in creation order.
func (s *Store) List() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	states := make([]productState, 0, len(s.m))
	for _, st := range s.m {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].seq < states[j].seq })
	out := make([]model.Product, len(states))
	for i, st := range states {
		out[i] = st.p
	}
	return out
}

func (s *Store) Get(id model.ID) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[id]
	if !ok {
		return model.Product{}, false
	}
	return st.p, true
}

// Create stores in under the next free id and returns the stored product.
func (s *Store) Create(in model.ProductInput) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	id := model.ID(strconv.FormatUint(s.lastID, 10))
	p := model.Product{ID: id, Name: in.Name, Price: in.Price}
	s.m[id] = productState{p: p, seq: s.lastID}
	return p
}

// Replace overwrites the product stored under id. It reports false if id is absent.
func (s *Store) Replace(id model.ID, in model.ProductInput) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[id]
	if !ok {
		return model.Product{}, false
	}
	st.p.Name = in.Name
	st.p.Price = in.Price
	s.m[id] = st
	return st.p, true
}

// Delete removes and returns the product stored under id.
func (s *Store) Delete(id model.ID) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[id]
	if !ok {
		return model.Product{}, false
	}
	delete(s.m, id)
	return st.p, true
}

// Len reports how many products are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
