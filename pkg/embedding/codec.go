// Package embedding holds the storage encoding of product embedding vectors.
//
// Vectors are stored as raw little-endian float32, the layout the embedding
// batch job writes (numpy float32 tobytes).
package embedding

import (
	"encoding/binary"
	"fmt"
	"math"
)

const bytesPerValue = 4

// Encode serializes v. A nil vector encodes to nil so the column stays NULL.
func Encode(v []float32) []byte {
	if v == nil {
		return nil
	}
	buf := make([]byte, len(v)*bytesPerValue)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*bytesPerValue:], math.Float32bits(f))
	}
	return buf
}

// Decode parses an encoded vector. Empty input yields nil.
func Decode(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%bytesPerValue != 0 {
		return nil, fmt.Errorf("embedding blob of %d bytes is not a float32 sequence", len(b))
	}
	v := make([]float32, len(b)/bytesPerValue)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*bytesPerValue:]))
	}
	return v, nil
}

// IsFinite reports whether every component is neither NaN nor infinite.
func IsFinite(v []float32) bool {
	for _, f := range v {
		x := float64(f)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
