// Package keyspace builds the fixed-layout, big-endian keys for every
// logical table vertex persists, so that lexicographic byte order
// matches numeric order and prefix scans by major id are valid. Every
// builder here mirrors one of the key_*_be helpers in
// original_source/src/encode.hpp, generalized from std::string
// concatenation to []byte, per spec.md §4.2.
package keyspace

import "encoding/binary"

// Node returns the nodes key for nodeId: <u64 nodeId>.
func Node(nodeID uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, nodeID)
	return b
}

// NodeColdProp returns the nodeColdProps key: <u64 nodeId>|<u32 keyId>.
func NodeColdProp(nodeID uint64, keyID uint32) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint64(b[0:8], nodeID)
	binary.BigEndian.PutUint32(b[8:12], keyID)
	return b
}

// NodeColdPropPrefix returns the <u64 nodeId> prefix shared by all of
// a node's cold property rows.
func NodeColdPropPrefix(nodeID uint64) []byte { return Node(nodeID) }

// NodeVector returns the nodeVectors key: <u64 nodeId>|<u32 tagId>.
func NodeVector(nodeID uint64, tagID uint32) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint64(b[0:8], nodeID)
	binary.BigEndian.PutUint32(b[8:12], tagID)
	return b
}

// NodeVectorPrefix returns the <u64 nodeId> prefix shared by all of a
// node's vector rows.
func NodeVectorPrefix(nodeID uint64) []byte { return Node(nodeID) }

// EdgeBySrcType returns the edgesBySrcType key:
// <u64 src>|<u32 typeId>|<u64 dst>|<u64 edgeId>.
func EdgeBySrcType(src uint64, typeID uint32, dst, edgeID uint64) []byte {
	b := make([]byte, 28)
	binary.BigEndian.PutUint64(b[0:8], src)
	binary.BigEndian.PutUint32(b[8:12], typeID)
	binary.BigEndian.PutUint64(b[12:20], dst)
	binary.BigEndian.PutUint64(b[20:28], edgeID)
	return b
}

// EdgeBySrcTypePrefix returns the <u64 src> prefix shared by all
// outgoing adjacency rows for a node.
func EdgeBySrcTypePrefix(src uint64) []byte { return Node(src) }

// EdgeByDstType returns the edgesByDstType key:
// <u64 dst>|<u32 typeId>|<u64 src>|<u64 edgeId>.
func EdgeByDstType(dst uint64, typeID uint32, src, edgeID uint64) []byte {
	b := make([]byte, 28)
	binary.BigEndian.PutUint64(b[0:8], dst)
	binary.BigEndian.PutUint32(b[8:12], typeID)
	binary.BigEndian.PutUint64(b[12:20], src)
	binary.BigEndian.PutUint64(b[20:28], edgeID)
	return b
}

// EdgeByDstTypePrefix returns the <u64 dst> prefix shared by all
// incoming adjacency rows for a node.
func EdgeByDstTypePrefix(dst uint64) []byte { return Node(dst) }

// EdgeByID returns the edgesById key: <u64 edgeId>.
func EdgeByID(edgeID uint64) []byte { return Node(edgeID) }

// EdgeProp returns the edgeProps key: <u64 edgeId>|<u32 keyId>.
func EdgeProp(edgeID uint64, keyID uint32) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint64(b[0:8], edgeID)
	binary.BigEndian.PutUint32(b[8:12], keyID)
	return b
}

// EdgePropPrefix returns the <u64 edgeId> prefix shared by all of an
// edge's property rows.
func EdgePropPrefix(edgeID uint64) []byte { return Node(edgeID) }

// DictID returns a dictionary id-side key: <u32 id>.
func DictID(id uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, id)
	return b
}

// DictName returns a dictionary name-side key: the raw name bytes.
func DictName(name string) []byte { return []byte(name) }

// VecTagMeta returns the vecTagMeta key: <u32 tagId>.
func VecTagMeta(tagID uint32) []byte { return DictID(tagID) }

// LabelIndex returns the labelIndex key: <u32 labelId>|<u64 nodeId>.
func LabelIndex(labelID uint32, nodeID uint64) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b[0:4], labelID)
	binary.BigEndian.PutUint64(b[4:12], nodeID)
	return b
}

// LabelIndexPrefix returns the <u32 labelId> prefix shared by all
// nodes carrying a given label.
func LabelIndexPrefix(labelID uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, labelID)
	return b
}

// Meta ASCII string keys, per spec.md §4.2.
const (
	MetaNodeSeq        = "nodeSeq"
	MetaEdgeSeq        = "edgeSeq"
	MetaLabelSeq       = "labelSeq"
	MetaRelTypeSeq     = "relTypeSeq"
	MetaPropKeySeq     = "propKeySeq"
	MetaVecTagSeq      = "vecTagSeq"
	MetaTextSeq        = "textSeq"
	MetaSchemaVersion  = "schemaVersion"
)

// DecodeU64Key decodes the leading 8 bytes of a key as a big-endian
// uint64, e.g. the major id of a nodes/edgesById row.
func DecodeU64Key(b []byte) uint64 { return binary.BigEndian.Uint64(b[:8]) }

// DecodeU32Key decodes the leading 4 bytes of a key as a big-endian
// uint32, e.g. the major id of a labelIndex row.
func DecodeU32Key(b []byte) uint32 { return binary.BigEndian.Uint32(b[:4]) }
