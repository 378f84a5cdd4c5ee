package transform

// ZigZagEncode maps a signed value to an unsigned one such that values of
// small magnitude map to small results: 0, -1, 1, -2 become 0, 1, 2, 3.
func ZigZagEncode(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// ZigZagDecode inverts ZigZagEncode.
func ZigZagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// ZigZag encodes a slice of signed values.
func ZigZag(values []int32) []uint32 {
	out := make([]uint32, len(values))
	for i, v := range values {
		out[i] = ZigZagEncode(v)
	}
	return out
}

// UnZigZag decodes a slice produced by ZigZag.
func UnZigZag(values []uint32) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = ZigZagDecode(v)
	}
	return out
}
