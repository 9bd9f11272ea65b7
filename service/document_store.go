package service

import (
	"sort"
	"sync"

	"github.com/Aashish23092/ocr-financial-aid/apperrors"
	"github.com/Aashish23092/ocr-financial-aid/dto"
)

// DocumentStore keeps the current session's documents in memory. It hands out
// copies so callers never share a document with an in-flight extraction.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]storedDoc
	next uint64
}

// storedDoc pairs a document with the order it was first saved in
type storedDoc struct {
	doc dto.ScannedDoc
	seq uint64
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]storedDoc)}
}

// Save inserts or replaces a document. A replaced document keeps its place
// in the listing order.
func (s *DocumentStore) Save(doc *dto.ScannedDoc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.docs[doc.ID]
	if !ok {
		s.next++
		entry.seq = s.next
	}
	entry.doc = *doc
	s.docs[doc.ID] = entry
}

func (s *DocumentStore) Get(id string) (*dto.ScannedDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.docs[id]
	if !ok {
		return nil, apperrors.NotFound("document", id)
	}
	doc := entry.doc
	return &doc, nil
}

// List returns every document in the order it was first saved
func (s *DocumentStore) List() []*dto.ScannedDoc {
	s.mu.RLock()
	entries := make([]storedDoc, 0, len(s.docs))
	for _, entry := range s.docs {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]*dto.ScannedDoc, len(entries))
	for i := range entries {
		out[i] = &entries[i].doc
	}
	return out
}

// Update applies fn to the stored document under the write lock
func (s *DocumentStore) Update(id string, fn func(doc *dto.ScannedDoc) error) (*dto.ScannedDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.docs[id]
	if !ok {
		return nil, apperrors.NotFound("document", id)
	}
	doc := entry.doc
	if err := fn(&doc); err != nil {
		return nil, err
	}
	entry.doc = doc
	s.docs[id] = entry
	return &doc, nil
}

func (s *DocumentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return apperrors.NotFound("document", id)
	}
	delete(s.docs, id)
	return nil
}

// Snapshot returns value copies for aggregation
func (s *DocumentStore) Snapshot() []dto.ScannedDoc {
	docs := s.List()
	out := make([]dto.ScannedDoc, len(docs))
	for i, d := range docs {
		out[i] = *d
	}
	return out
}
