// Package util provides small helpers shared by the presentation and
// workload layers.
package util

import (
	"github.com/OneOfOne/xxhash"
)

// HashCode returns a 64-bit checksum of key. It is used to stamp a content
// fingerprint on JSON dumps and the CLI's end-of-run summary so two
// simulator runs over the same
// command list can be diffed without comparing raw page bytes; it plays no
// part in the flash array's own operation.
func HashCode(key []byte) uint64 {
	h := xxhash.New64()
	h.Write(key)
	return h.Sum64()
}
