package tcpserver

import (
	"bytes"
	"strconv"
)

// seekPrefix marks a control packet that repositions the session cursor
// instead of being stored: "SEEKTO:<record>,<offset>" followed by the record
// delimiter.
var seekPrefix = []byte("SEEKTO:")

// parseSeekPacket recognizes a seek control packet. Malformed seek syntax is
// not a seek: the packet falls through and is stored like any other data.
func parseSeekPacket(pkt []byte) (recordIndex, offsetInRecord int, ok bool) {
	if !bytes.HasPrefix(pkt, seekPrefix) {
		return 0, 0, false
	}
	body := pkt[len(seekPrefix):]
	// Strip the trailing delimiter byte the framer kept.
	if len(body) > 0 {
		body = body[:len(body)-1]
	}
	comma := bytes.IndexByte(body, ',')
	if comma < 0 {
		return 0, 0, false
	}
	recordIndex, err := strconv.Atoi(string(body[:comma]))
	if err != nil || recordIndex < 0 {
		return 0, 0, false
	}
	offsetInRecord, err = strconv.Atoi(string(body[comma+1:]))
	if err != nil || offsetInRecord < 0 {
		return 0, 0, false
	}
	return recordIndex, offsetInRecord, true
}
