package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// document is an open config file as last reported by the client.
type document struct {
	content string
	version protocol.Integer
}

// DocumentStore holds open config files keyed by URI. Each entry remembers
// the client's version so out-of-order changes can be dropped.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]document)}
}

// Open records a newly opened document, replacing any previous state.
func (s *DocumentStore) Open(uri, content string, version protocol.Integer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = document{content: content, version: version}
}

// Update replaces the content of an open document. It reports false and
// keeps the stored content when the document is not open or version is
// older than the stored one.
func (s *DocumentStore) Update(uri, content string, version protocol.Integer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || version < doc.version {
		return false
	}
	s.docs[uri] = document{content: content, version: version}
	return true
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc.content, ok
}

// Version returns the stored version of uri.
func (s *DocumentStore) Version(uri string) (protocol.Integer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc.version, ok
}
