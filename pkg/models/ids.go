package models

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator allocates identifiers for records created without one.
type IDGenerator func() string

// UUIDGenerator returns random (version 4) UUID strings.
func UUIDGenerator() string {
	return uuid.NewString()
}

// SequenceGenerator returns a deterministic IDGenerator yielding prefix-1,
// prefix-2, and so on.
func SequenceGenerator(prefix string) IDGenerator {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
