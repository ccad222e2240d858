package server

import (
	"sort"
	"strings"
	"sync"

	"github.com/altenburg/minierp/internal/domain/models"
)

// Store is the in-memory authoritative product store backing the
// reference server. Ids are assigned once and never reused.
type Store struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	nextID   int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{products: make(map[int64]models.Product)}
}

// List returns all products ordered by id.
func (s *Store) List() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search returns products whose name contains the term, case-insensitive.
func (s *Store) Search(term string) []models.Product {
	needle := strings.ToLower(term)

	all := s.List()
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Create stores a new product and returns it with its assigned id.
func (s *Store) Create(input models.ProductInput) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p := models.Product{
		ID:       s.nextID,
		Name:     input.Name,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	s.products[p.ID] = p
	return p
}

// Update replaces the product with the given id. The second return value
// reports whether the id existed.
func (s *Store) Update(id int64, input models.ProductInput) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return models.Product{}, false
	}
	p := models.Product{ID: id, Name: input.Name, Quantity: input.Quantity, Price: input.Price}
	s.products[id] = p
	return p, true
}

// Delete removes the product with the given id, reporting whether it
// existed.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	return true
}
