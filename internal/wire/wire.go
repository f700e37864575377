package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const (
	version   byte = 1
	kindEntry byte = 1

	// magic(4) | ver(1) | kind(1=entry) | storedAt(i64 be) | ttl(i64 be) | vlen(u32 be) | payload(vlen)
	headerLen = 4 + 1 + 1 + 8 + 8 + 4
)

var (
	ErrCorrupt = errors.New("nscache: corrupt entry")
	magic4     = [...]byte{'N', 'S', 'C', 'A'}
)

// Entry is one decoded cache entry: the codec payload plus the metadata
// needed to judge freshness at read time.
type Entry struct {
	StoredAt time.Time
	TTL      time.Duration
	Payload  []byte
}

// Expired reports whether the entry's logical TTL has elapsed at now.
// A non-positive TTL never expires.
func (e Entry) Expired(now time.Time) bool {
	if e.TTL <= 0 {
		return false
	}
	return now.After(e.StoredAt.Add(e.TTL))
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames payload together with its storage time and logical TTL.
func Encode(storedAt time.Time, ttl time.Duration, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindEntry)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], uint64(storedAt.UnixNano()))
	buf.Write(u8[:])

	binary.BigEndian.PutUint64(u8[:], uint64(ttl))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode parses an envelope produced by Encode. Decoding is strict: bad
// magic, unknown version or kind, truncation and trailing bytes are all
// corruption. The returned payload is a zero-copy subslice of b.
func Decode(b []byte) (Entry, error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version || b[5] != kindEntry {
		return Entry{}, ErrCorrupt
	}

	off := 6

	storedAt := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	ttl := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // strict length: no truncation, no trailing bytes
		return Entry{}, ErrCorrupt
	}

	return Entry{
		StoredAt: time.Unix(0, storedAt),
		TTL:      time.Duration(ttl),
		Payload:  b[off : off+vlen],
	}, nil
}
