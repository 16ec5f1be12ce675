package orders

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// NewOrderNumber mints the human-facing order reference. The millisecond
// timestamp plus a random suffix keeps collisions out of view without a
// uniqueness constraint on the column.
func NewOrderNumber(now time.Time) string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		binary.BigEndian.PutUint32(buf[:], uint32(now.UnixNano()))
	}
	suffix := binary.BigEndian.Uint32(buf[:]) % 1000000
	return fmt.Sprintf("ORD-%d-%06d", now.UnixMilli(), suffix)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
