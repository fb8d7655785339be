package store

import "github.com/baudgraph/vertex/internal/dict"

// The dictionary accessor pairs below are the supplemental typed API
// original_source exposes as getOrCreateLabelId/getLabelName and its
// four siblings, layered over the generic internal/dict namespaces.

// GetOrCreateLabelID interns name into the labels namespace.
func (s *Store) GetOrCreateLabelID(name string, createIfMissing bool) (uint32, error) {
	return s.dict.GetOrCreate(dict.Labels, name, createIfMissing)
}

// LabelName resolves a label id back to its name.
func (s *Store) LabelName(id uint32) (string, error) {
	return s.dict.NameOf(dict.Labels, id)
}

// GetOrCreateRelTypeID interns name into the relationship-type
// namespace.
func (s *Store) GetOrCreateRelTypeID(name string, createIfMissing bool) (uint32, error) {
	return s.dict.GetOrCreate(dict.RelTypes, name, createIfMissing)
}

// RelTypeName resolves a relationship-type id back to its name.
func (s *Store) RelTypeName(id uint32) (string, error) {
	return s.dict.NameOf(dict.RelTypes, id)
}

// GetOrCreatePropKeyID interns name into the property-key namespace.
func (s *Store) GetOrCreatePropKeyID(name string, createIfMissing bool) (uint32, error) {
	return s.dict.GetOrCreate(dict.PropKeys, name, createIfMissing)
}

// PropKeyName resolves a property-key id back to its name.
func (s *Store) PropKeyName(id uint32) (string, error) {
	return s.dict.NameOf(dict.PropKeys, id)
}

// GetOrCreateVecTagID interns name into the vector-tag namespace. When
// dim is non-zero and the tag is newly created, dim is persisted into
// vecTagMeta in the same transaction as the dictionary write, per
// spec.md §4.4.
func (s *Store) GetOrCreateVecTagID(name string, createIfMissing bool, dim uint32) (uint32, error) {
	return s.dict.GetOrCreateVecTag(name, createIfMissing, dim)
}

// VecTagName resolves a vector-tag id back to its name.
func (s *Store) VecTagName(id uint32) (string, error) {
	return s.dict.NameOf(dict.VecTags, id)
}

// GetOrCreateTextID interns name into the free-text namespace.
func (s *Store) GetOrCreateTextID(name string, createIfMissing bool) (uint32, error) {
	return s.dict.GetOrCreate(dict.Texts, name, createIfMissing)
}

// TextName resolves a text id back to its name.
func (s *Store) TextName(id uint32) (string, error) {
	return s.dict.NameOf(dict.Texts, id)
}
