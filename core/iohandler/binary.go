// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package iohandler

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ipasc/pacfish/core/metadata"
)

// packValues - values as little-endian dtype elements
func packValues(dtype metadata.DType, values []float64) ([]byte, error) {
	size := dtype.Size()
	if size == 0 {
		return nil, fmt.Errorf("unsupported dtype: %v", dtype)
	}

	out := make([]byte, size*len(values))
	le := binary.LittleEndian

	for c, v := range values {
		b := out[c*size : (c+1)*size]
		switch dtype {
		case metadata.DTypeFloat64:
			le.PutUint64(b, math.Float64bits(v))
		case metadata.DTypeFloat32:
			le.PutUint32(b, math.Float32bits(float32(v)))
		case metadata.DTypeInt64:
			le.PutUint64(b, uint64(int64(v)))
		case metadata.DTypeInt32:
			le.PutUint32(b, uint32(int32(v)))
		case metadata.DTypeInt16:
			le.PutUint16(b, uint16(int16(v)))
		case metadata.DTypeUInt16:
			le.PutUint16(b, uint16(v))
		case metadata.DTypeUInt8:
			b[0] = uint8(v)
		}
	}
	return out, nil
}

// unpackValues - reverse of packValues, count must match the data length exactly
func unpackValues(dtype metadata.DType, data []byte, count int) ([]float64, error) {
	size := dtype.Size()
	if size == 0 {
		return nil, fmt.Errorf("unsupported dtype: %v", dtype)
	}
	if len(data) != size*count {
		return nil, fmt.Errorf("expected %v bytes of %v for %v values, got %v", size*count, dtype, count, len(data))
	}

	out := make([]float64, count)
	le := binary.LittleEndian

	for c := range out {
		b := data[c*size : (c+1)*size]
		switch dtype {
		case metadata.DTypeFloat64:
			out[c] = math.Float64frombits(le.Uint64(b))
		case metadata.DTypeFloat32:
			out[c] = float64(math.Float32frombits(le.Uint32(b)))
		case metadata.DTypeInt64:
			out[c] = float64(int64(le.Uint64(b)))
		case metadata.DTypeInt32:
			out[c] = float64(int32(le.Uint32(b)))
		case metadata.DTypeInt16:
			out[c] = float64(int16(le.Uint16(b)))
		case metadata.DTypeUInt16:
			out[c] = float64(le.Uint16(b))
		case metadata.DTypeUInt8:
			out[c] = float64(b[0])
		}
	}
	return out, nil
}

func packInts(values []int64) []byte {
	out := make([]byte, 8*len(values))
	for c, v := range values {
		binary.LittleEndian.PutUint64(out[c*8:], uint64(v))
	}
	return out
}

func unpackInts(data []byte, count int) ([]int64, error) {
	if len(data) != 8*count {
		return nil, fmt.Errorf("expected %v bytes of int64 for %v values, got %v", 8*count, count, len(data))
	}
	out := make([]int64, count)
	for c := range out {
		out[c] = int64(binary.LittleEndian.Uint64(data[c*8:]))
	}
	return out, nil
}
