package archive

import "encoding/binary"

// Key layout, lexicographically ordered for range scans:
//
//	m            archive metadata: last assigned sequence (8 bytes BE)
//	r/{seq_be8}  one archived record per sequence
var metaKey = []byte("m")

func recordKey(seq uint64) []byte {
	key := make([]byte, 2+8)
	key[0] = 'r'
	key[1] = '/'
	binary.BigEndian.PutUint64(key[2:], seq)
	return key
}

func seqFromKey(key []byte) (uint64, bool) {
	if len(key) != 10 || key[0] != 'r' || key[1] != '/' {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[2:]), true
}
