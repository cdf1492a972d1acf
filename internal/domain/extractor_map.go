package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExtractorEntry pairs a document type with its extractor.
type ExtractorEntry struct {
	DocumentTypeID string
	Extractor      ExtractorRef
}

// ExtractorMap maps document type ids to extractors and remembers insertion
// order, including the key order of the JSON object it was decoded from.
// The zero value is an empty map ready to use.
type ExtractorMap struct {
	keys []string
	refs map[string]ExtractorRef
}

// NewExtractorMap builds an ExtractorMap from entries in order.
func NewExtractorMap(entries ...ExtractorEntry) ExtractorMap {
	var m ExtractorMap
	for _, e := range entries {
		m.Set(e.DocumentTypeID, e.Extractor)
	}
	return m
}

// Set adds or replaces the extractor for docType. Replacing keeps the original position.
func (m *ExtractorMap) Set(docType string, ref ExtractorRef) {
	if m.refs == nil {
		m.refs = make(map[string]ExtractorRef)
	}
	if _, ok := m.refs[docType]; !ok {
		m.keys = append(m.keys, docType)
	}
	m.refs[docType] = ref
}

// Get returns the extractor registered for docType.
func (m ExtractorMap) Get(docType string) (ExtractorRef, bool) {
	ref, ok := m.refs[docType]
	return ref, ok
}

// First returns the earliest inserted entry.
func (m ExtractorMap) First() (ExtractorEntry, bool) {
	if len(m.keys) == 0 {
		return ExtractorEntry{}, false
	}
	k := m.keys[0]
	return ExtractorEntry{DocumentTypeID: k, Extractor: m.refs[k]}, true
}

// Len returns the number of entries.
func (m ExtractorMap) Len() int {
	return len(m.keys)
}

// Entries returns all entries in insertion order.
func (m ExtractorMap) Entries() []ExtractorEntry {
	out := make([]ExtractorEntry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, ExtractorEntry{DocumentTypeID: k, Extractor: m.refs[k]})
	}
	return out
}

// Clone returns an independent copy of m.
func (m ExtractorMap) Clone() ExtractorMap {
	return NewExtractorMap(m.Entries()...)
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m ExtractorMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.refs[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object (or null) keeping the object's key order.
func (m *ExtractorMap) UnmarshalJSON(data []byte) error {
	*m = ExtractorMap{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding extractor map: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decoding extractor map: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding extractor map key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decoding extractor map: non-string key %v", keyTok)
		}
		var ref ExtractorRef
		if err := dec.Decode(&ref); err != nil {
			return fmt.Errorf("decoding extractor for %q: %w", key, err)
		}
		m.Set(key, ref)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding extractor map: %w", err)
	}
	return nil
}
