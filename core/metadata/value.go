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

// Package metadata holds the values stored against tags. A Value is a closed
// variant: DataType says which of its members is in use. Everything composite
// is copied on the way in and on the way out, so callers never share storage
// with a builder or a container.
package metadata

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

type DataType int

const (
	TypeInt DataType = iota
	TypeFloat
	TypeString
	TypeIntArray
	TypeFloatArray
	TypeStringArray
	TypePairedArray
	TypeNDArray
	TypeMap
)

var dataTypeNames = map[DataType]string{
	TypeInt:         "int",
	TypeFloat:       "float",
	TypeString:      "string",
	TypeIntArray:    "int array",
	TypeFloatArray:  "float array",
	TypeStringArray: "string array",
	TypePairedArray: "paired array",
	TypeNDArray:     "ndarray",
	TypeMap:         "map",
}

func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%v)", int(t))
}

// Value - variant storing one metadata value
type Value struct {
	DataType DataType

	IValue int64
	FValue float64
	SValue string

	IArray []int64
	FArray []float64
	SArray []string

	// Rows of a paired array, eg [frequencies, response]. Rows may differ in
	// length here, it's up to the consistency checker to complain
	Rows [][]float64

	Array *NDArray
	Map   Map
}

// Map - nested mapping of name->value
type Map map[string]Value

func IntValue(i int64) Value {
	return Value{DataType: TypeInt, IValue: i}
}

func FloatValue(f float64) Value {
	return Value{DataType: TypeFloat, FValue: f}
}

func StringValue(s string) Value {
	return Value{DataType: TypeString, SValue: s}
}

func IntArrayValue(values []int64) Value {
	return Value{DataType: TypeIntArray, IArray: copyInts(values)}
}

func FloatArrayValue(values []float64) Value {
	return Value{DataType: TypeFloatArray, FArray: copyFloats(values)}
}

// Vector3Value - fixed length float array, used for positions, orientations, shapes...
func Vector3Value(v [3]float64) Value {
	return FloatArrayValue(v[:])
}

func StringArrayValue(values []string) Value {
	return Value{DataType: TypeStringArray, SArray: copyStrings(values)}
}

// PairedArrayValue - two curves sharing an x axis, eg a detector's [frequencies, response]
func PairedArrayValue(x []float64, y []float64) Value {
	return Value{DataType: TypePairedArray, Rows: [][]float64{copyFloats(x), copyFloats(y)}}
}

// RowsValue - generic list of float rows, used when reading back paired arrays from a file
func RowsValue(rows [][]float64) Value {
	return Value{DataType: TypePairedArray, Rows: copyRows(rows)}
}

func NDArrayValue(a *NDArray) Value {
	return Value{DataType: TypeNDArray, Array: a.Clone()}
}

func MapValue(m Map) Value {
	return Value{DataType: TypeMap, Map: m.Clone()}
}

// IsNumber - int or float scalar
func (v Value) IsNumber() bool {
	return v.DataType == TypeInt || v.DataType == TypeFloat
}

// AsFloat - numeric scalar as float64
func (v Value) AsFloat() (float64, bool) {
	switch v.DataType {
	case TypeInt:
		return float64(v.IValue), true
	case TypeFloat:
		return v.FValue, true
	}
	return 0, false
}

// AsInt - numeric scalar as an int, floats only if they hold a whole number
func (v Value) AsInt() (int64, bool) {
	switch v.DataType {
	case TypeInt:
		return v.IValue, true
	case TypeFloat:
		if v.FValue == math.Trunc(v.FValue) {
			return int64(v.FValue), true
		}
	}
	return 0, false
}

// AsFloats - any flat numeric array (ints, floats, 1D ndarray) as a new float64 slice
func (v Value) AsFloats() ([]float64, bool) {
	switch v.DataType {
	case TypeFloatArray:
		return copyFloats(v.FArray), true
	case TypeIntArray:
		result := make([]float64, len(v.IArray))
		for c, i := range v.IArray {
			result[c] = float64(i)
		}
		return result, true
	case TypeNDArray:
		if v.Array != nil && len(v.Array.Shape) == 1 {
			return copyFloats(v.Array.Data), true
		}
	}
	return nil, false
}

// IsNumberArray - anything AsFloats can read, or a paired/ndarray structure of numbers
func (v Value) IsNumberArray() bool {
	switch v.DataType {
	case TypeIntArray, TypeFloatArray, TypePairedArray, TypeNDArray:
		return true
	}
	return false
}

// Len - number of entries of an array value (outer dimension). 1 for scalars
func (v Value) Len() int {
	switch v.DataType {
	case TypeIntArray:
		return len(v.IArray)
	case TypeFloatArray:
		return len(v.FArray)
	case TypeStringArray:
		return len(v.SArray)
	case TypePairedArray:
		return len(v.Rows)
	case TypeNDArray:
		if v.Array == nil || len(v.Array.Shape) == 0 {
			return 0
		}
		return v.Array.Shape[0]
	case TypeMap:
		return len(v.Map)
	}
	return 1
}

func (v Value) Clone() Value {
	result := Value{DataType: v.DataType, IValue: v.IValue, FValue: v.FValue, SValue: v.SValue}
	if v.IArray != nil {
		result.IArray = copyInts(v.IArray)
	}
	if v.FArray != nil {
		result.FArray = copyFloats(v.FArray)
	}
	if v.SArray != nil {
		result.SArray = copyStrings(v.SArray)
	}
	if v.Rows != nil {
		result.Rows = copyRows(v.Rows)
	}
	if v.Array != nil {
		result.Array = v.Array.Clone()
	}
	if v.Map != nil {
		result.Map = v.Map.Clone()
	}
	return result
}

// Equal - structural equality. NaN compares equal to NaN so stored data round-trips as equal
func (v Value) Equal(o Value) bool {
	if v.DataType != o.DataType {
		return false
	}

	switch v.DataType {
	case TypeInt:
		return v.IValue == o.IValue
	case TypeFloat:
		return floatEqual(v.FValue, o.FValue)
	case TypeString:
		return v.SValue == o.SValue
	case TypeIntArray:
		if len(v.IArray) != len(o.IArray) {
			return false
		}
		for c := range v.IArray {
			if v.IArray[c] != o.IArray[c] {
				return false
			}
		}
		return true
	case TypeFloatArray:
		return floatsEqual(v.FArray, o.FArray)
	case TypeStringArray:
		if len(v.SArray) != len(o.SArray) {
			return false
		}
		for c := range v.SArray {
			if v.SArray[c] != o.SArray[c] {
				return false
			}
		}
		return true
	case TypePairedArray:
		if len(v.Rows) != len(o.Rows) {
			return false
		}
		for c := range v.Rows {
			if !floatsEqual(v.Rows[c], o.Rows[c]) {
				return false
			}
		}
		return true
	case TypeNDArray:
		return v.Array.Equal(o.Array)
	case TypeMap:
		return v.Map.Equal(o.Map)
	}
	return false
}

// ToString - for tests and verbose logging
func (v Value) ToString() string {
	switch v.DataType {
	case TypeInt:
		return fmt.Sprintf("%v", v.IValue)
	case TypeFloat:
		return fmt.Sprintf("%v", v.FValue)
	case TypeString:
		return fmt.Sprintf("%q", v.SValue)
	case TypeIntArray:
		return fmt.Sprintf("%v", v.IArray)
	case TypeFloatArray:
		return fmt.Sprintf("%v", v.FArray)
	case TypeStringArray:
		return fmt.Sprintf("%q", v.SArray)
	case TypePairedArray:
		return fmt.Sprintf("%v", v.Rows)
	case TypeNDArray:
		return v.Array.ToString()
	case TypeMap:
		return v.Map.ToString()
	}
	return "?"
}

func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	result := make(Map, len(m))
	for k, v := range m {
		result[k] = v.Clone()
	}
	return result
}

func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Keys - sorted keys, so anything iterating a map does so deterministically
func (m Map) Keys() []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}

func (m Map) ToString() string {
	parts := []string{}
	for _, k := range m.Keys() {
		parts = append(parts, k+":"+m[k].ToString())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func floatEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for c := range a {
		if !floatEqual(a[c], b[c]) {
			return false
		}
	}
	return true
}

func copyFloats(values []float64) []float64 {
	result := make([]float64, len(values))
	copy(result, values)
	return result
}

func copyInts(values []int64) []int64 {
	result := make([]int64, len(values))
	copy(result, values)
	return result
}

func copyStrings(values []string) []string {
	result := make([]string, len(values))
	copy(result, values)
	return result
}

func copyRows(rows [][]float64) [][]float64 {
	result := make([][]float64, len(rows))
	for c, row := range rows {
		result[c] = copyFloats(row)
	}
	return result
}
