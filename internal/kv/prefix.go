package kv

import "bytes"

// WalkPrefix seeks to prefix in b and calls visit for every key
// sharing that exact prefix, stopping at the first key that does not
// (the major id changed) or when visit returns false. This is the
// reusable form of the "cursor scan, break when the major id changes"
// pattern spec.md §9 calls out as the canonical prefix-scan shape
// for adjacency, label-index, cold-property, vector, and edge-property
// scans.
func WalkPrefix(b Bucket, prefix []byte, visit func(key, value []byte) bool) {
	c := b.Cursor()
	for k, v := c.Seek(prefix); k != nil; k, v = c.Next() {
		if !bytes.HasPrefix(k, prefix) {
			return
		}
		if !visit(k, v) {
			return
		}
	}
}

// DeletePrefix deletes every key sharing prefix in b. Used by cascade
// deletes (nodeColdProps, nodeVectors, edgeProps) per spec.md §4.5.
func DeletePrefix(b Bucket, prefix []byte) error {
	var keys [][]byte
	WalkPrefix(b, prefix, func(key, _ []byte) bool {
		keys = append(keys, append([]byte(nil), key...))
		return true
	})
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
