package store

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Memory keeps documents in-process. Used by tests and for running the
// server without a database.
type Memory struct {
	mu    sync.RWMutex
	colls map[string]*memCollection
}

type memCollection struct {
	unique []string
	docs   []Document
}

func NewMemory() *Memory {
	return &Memory{colls: make(map[string]*memCollection)}
}

func (m *Memory) Prepare(_ context.Context, specs []CollectionSpec) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, spec := range specs {
		c := m.collection(spec.Name)
		c.unique = append([]string(nil), spec.Unique...)
	}
	return nil
}

func (m *Memory) InsertOne(_ context.Context, collection string, doc Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.collection(collection)

	for _, field := range c.unique {
		v, ok := doc[field]
		if !ok {
			continue
		}
		for _, existing := range c.docs {
			if reflect.DeepEqual(existing[field], v) {
				return "", fmt.Errorf("memory insert %s: %w", collection, ErrDuplicate)
			}
		}
	}

	id := uuid.New().String()
	stored := maps.Clone(doc)
	stored[IDField] = id
	c.docs = append(c.docs, stored)
	return id, nil
}

func (m *Memory) FindOne(_ context.Context, collection string, filter Filter) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colls[collection]
	if !ok {
		return nil, ErrNotFound
	}
	for _, doc := range c.docs {
		if matches(doc, filter) {
			return maps.Clone(doc), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) FindMany(_ context.Context, collection string, filter Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Document{}
	c, ok := m.colls[collection]
	if !ok {
		return out, nil
	}
	for _, doc := range c.docs {
		if matches(doc, filter) {
			out = append(out, maps.Clone(doc))
		}
	}
	return out, nil
}

func (m *Memory) Ping(context.Context) error  { return nil }
func (m *Memory) Close(context.Context) error { return nil }

// caller holds m.mu
func (m *Memory) collection(name string) *memCollection {
	c, ok := m.colls[name]
	if !ok {
		c = &memCollection{}
		m.colls[name] = c
	}
	return c
}

func matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
