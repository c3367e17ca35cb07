package xlru

import "errors"

var (
	// ErrInvalidSize 表示容量不是正数。
	ErrInvalidSize = errors.New("xlru: size must be positive")

	// ErrSizeExceedsMax 表示容量超过 1<<24。
	ErrSizeExceedsMax = errors.New("xlru: size too large")

	// ErrInvalidTTL 表示 TTL 为负数。
	ErrInvalidTTL = errors.New("xlru: negative ttl")
)
