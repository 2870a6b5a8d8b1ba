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

package metadata

import (
	"fmt"
	"math"
)

// DType - element type an NDArray is stored as on disk. In memory all values are float64
type DType string

const (
	DTypeFloat64 DType = "float64"
	DTypeFloat32 DType = "float32"
	DTypeInt64   DType = "int64"
	DTypeInt32   DType = "int32"
	DTypeInt16   DType = "int16"
	DTypeUInt16  DType = "uint16"
	DTypeUInt8   DType = "uint8"
)

var dtypeSizes = map[DType]int{
	DTypeFloat64: 8,
	DTypeFloat32: 4,
	DTypeInt64:   8,
	DTypeInt32:   4,
	DTypeInt16:   2,
	DTypeUInt16:  2,
	DTypeUInt8:   1,
}

// Size - bytes per element, 0 for unsupported dtypes
func (d DType) Size() int {
	return dtypeSizes[d]
}

func (d DType) IsValid() bool {
	return d.Size() > 0
}

// Integer ranges as float64, upper bound exclusive
var dtypeIntRanges = map[DType][2]float64{
	DTypeInt64:  {math.MinInt64, 1 << 63},
	DTypeInt32:  {math.MinInt32, math.MaxInt32 + 1},
	DTypeInt16:  {math.MinInt16, math.MaxInt16 + 1},
	DTypeUInt16: {0, math.MaxUint16 + 1},
	DTypeUInt8:  {0, math.MaxUint8 + 1},
}

// Holds - true if v survives conversion to d and back unchanged. NaN only
// counts for the float dtypes
func (d DType) Holds(v float64) bool {
	switch d {
	case DTypeFloat64:
		return true
	case DTypeFloat32:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
		return math.Abs(v) <= math.MaxFloat32 && float64(float32(v)) == v
	}

	r, ok := dtypeIntRanges[d]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return false
	}
	return v >= r[0] && v < r[1]
}

// NDArray - row-major multi dimensional numeric array. For the binary time
// series the outer axis indexes acquisition frames/channels
type NDArray struct {
	DType DType
	Shape []int
	Data  []float64
}

// NewNDArray - zero filled array of the given shape
func NewNDArray(dtype DType, shape ...int) *NDArray {
	return &NDArray{DType: dtype, Shape: copyShape(shape), Data: make([]float64, ShapeSize(shape))}
}

// NewNDArrayFromData - copies data in, data must hold exactly the number of elements shape describes
func NewNDArrayFromData(dtype DType, shape []int, data []float64) (*NDArray, error) {
	if ShapeSize(shape) != len(data) {
		return nil, fmt.Errorf("shape %v needs %v elements, got %v", shape, ShapeSize(shape), len(data))
	}
	return &NDArray{DType: dtype, Shape: copyShape(shape), Data: copyFloats(data)}, nil
}

// ShapeSize - element count of a shape. A zero-dimensional shape is a scalar (1 element)
func ShapeSize(shape []int) int {
	size := 1
	for _, s := range shape {
		size *= s
	}
	return size
}

// Validate - checks dtype is known, data length matches the shape and every
// value is exactly representable in the dtype
func (a *NDArray) Validate() error {
	if a == nil {
		return fmt.Errorf("nil array")
	}
	if !a.DType.IsValid() {
		return fmt.Errorf("unsupported dtype: %v", a.DType)
	}
	for _, s := range a.Shape {
		if s < 0 {
			return fmt.Errorf("negative dimension in shape %v", a.Shape)
		}
	}
	if ShapeSize(a.Shape) != len(a.Data) {
		return fmt.Errorf("shape %v needs %v elements, got %v", a.Shape, ShapeSize(a.Shape), len(a.Data))
	}
	for c, v := range a.Data {
		if !a.DType.Holds(v) {
			return fmt.Errorf("value %v at index %v can't be stored as %v", v, c, a.DType)
		}
	}
	return nil
}

// Len - total element count
func (a *NDArray) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// FrameSize - elements per entry of the outer axis
func (a *NDArray) FrameSize() int {
	if a == nil || len(a.Shape) == 0 {
		return 0
	}
	return ShapeSize(a.Shape[1:])
}

// Frame - copy of the idx'th entry along the outer axis
func (a *NDArray) Frame(idx int) ([]float64, error) {
	if a == nil || len(a.Shape) == 0 {
		return nil, fmt.Errorf("array has no outer axis")
	}
	if idx < 0 || idx >= a.Shape[0] {
		return nil, fmt.Errorf("frame %v out of range, have %v", idx, a.Shape[0])
	}
	size := a.FrameSize()
	return copyFloats(a.Data[idx*size : (idx+1)*size]), nil
}

// At - value at a multi dimensional index
func (a *NDArray) At(idx ...int) (float64, error) {
	if len(idx) != len(a.Shape) {
		return 0, fmt.Errorf("index %v does not match shape %v", idx, a.Shape)
	}
	offset := 0
	for c, i := range idx {
		if i < 0 || i >= a.Shape[c] {
			return 0, fmt.Errorf("index %v out of range for shape %v", idx, a.Shape)
		}
		offset = offset*a.Shape[c] + i
	}
	return a.Data[offset], nil
}

func (a *NDArray) Clone() *NDArray {
	if a == nil {
		return nil
	}
	return &NDArray{DType: a.DType, Shape: copyShape(a.Shape), Data: copyFloats(a.Data)}
}

func (a *NDArray) Equal(o *NDArray) bool {
	if a == nil || o == nil {
		return a == nil && o == nil
	}
	if a.DType != o.DType || len(a.Shape) != len(o.Shape) {
		return false
	}
	for c := range a.Shape {
		if a.Shape[c] != o.Shape[c] {
			return false
		}
	}
	return floatsEqual(a.Data, o.Data)
}

// MinMax - smallest and largest value, ignoring NaN. Both NaN if there is nothing to compare
func (a *NDArray) MinMax() (float64, float64) {
	min, max := math.NaN(), math.NaN()
	for _, v := range a.Data {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return min, max
}

func (a *NDArray) ToString() string {
	if a == nil {
		return "ndarray<nil>"
	}
	if len(a.Data) <= 8 {
		return fmt.Sprintf("ndarray<%v %v %v>", a.DType, a.Shape, a.Data)
	}
	return fmt.Sprintf("ndarray<%v %v>", a.DType, a.Shape)
}

func copyShape(shape []int) []int {
	result := make([]int, len(shape))
	copy(result, shape)
	return result
}
