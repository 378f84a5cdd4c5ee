package transform

// OffsetEncode rebases values on the sequence minimum. Distances are
// computed in 64-bit arithmetic so the full int32 span fits a uint32.
// The minimum must be carried alongside the encoded data.
func OffsetEncode(values []int32) ([]uint32, int32) {
	if len(values) == 0 {
		return []uint32{}, 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	out := make([]uint32, len(values))
	for i, v := range values {
		out[i] = uint32(int64(v) - int64(min))
	}
	return out, min
}

// OffsetDecode inverts OffsetEncode given the original minimum.
func OffsetDecode(values []uint32, min int32) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = OffsetDecodeValue(v, min)
	}
	return out
}

// OffsetDecodeValue restores a single rebased value.
func OffsetDecodeValue(v uint32, min int32) int32 {
	return int32(int64(min) + int64(v))
}
