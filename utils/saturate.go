// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// ClampInt32 narrows v to the int32 domain, pinning at the bounds instead of
// wrapping.
func ClampInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// SaturatingAdd32 adds a and b, clamping the result to [MinInt32, MaxInt32].
func SaturatingAdd32(a, b int32) int32 {
	return ClampInt32(int64(a) + int64(b))
}
