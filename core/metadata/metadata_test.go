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
	"testing"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/tags"
)

func Example_valueToString() {
	fmt.Println(IntValue(3).ToString())
	fmt.Println(FloatValue(3.14).ToString())
	fmt.Println(StringValue("test").ToString())
	fmt.Println(IntArrayValue([]int64{3, 5, 7}).ToString())
	fmt.Println(StringArrayValue([]string{"a", "b"}).ToString())
	fmt.Println(PairedArrayValue([]float64{1, 2}, []float64{0.5}).ToString())
	fmt.Println(MapValue(Map{"b": IntValue(2), "a": FloatValue(1.5)}).ToString())
	fmt.Println(NDArrayValue(NewNDArray(DTypeUInt8, 2, 2)).ToString())
	fmt.Println(NDArrayValue(NewNDArray(DTypeFloat64, 2, 100)).ToString())

	// Output:
	// 3
	// 3.14
	// "test"
	// [3 5 7]
	// ["a" "b"]
	// [[1 2] [0.5]]
	// {a:1.5 b:2}
	// ndarray<uint8 [2 2] [0 0 0 0]>
	// ndarray<float64 [2 100]>
}

func Example_valueConversions() {
	f, ok := IntValue(4).AsFloat()
	fmt.Println(f, ok)
	i, ok := FloatValue(4.5).AsInt()
	fmt.Println(i, ok)
	i, ok = FloatValue(4).AsInt()
	fmt.Println(i, ok)
	fs, ok := IntArrayValue([]int64{1, 2}).AsFloats()
	fmt.Println(fs, ok)
	_, ok = StringValue("x").AsFloats()
	fmt.Println(ok, StringValue("x").IsNumber(), PairedArrayValue(nil, nil).IsNumberArray())
	fmt.Println(FloatArrayValue([]float64{1, 2, 3}).Len(), PairedArrayValue(nil, nil).Len(), IntValue(1).Len())

	// Output:
	// 4 true
	// 0 false
	// 4 true
	// [1 2] true
	// false false true
	// 3 2 1
}

func Test_ValueCloneIsIndependent(t *testing.T) {
	src := []float64{1, 2, 3}
	v := FloatArrayValue(src)
	src[0] = 99
	if v.FArray[0] != 1 {
		t.Errorf("constructor did not copy input")
	}

	m := MapValue(Map{"rows": PairedArrayValue([]float64{1}, []float64{2})})
	c := m.Clone()
	c.Map["rows"].Rows[0][0] = 42
	c.Map["new"] = IntValue(1)
	if m.Map["rows"].Rows[0][0] != 1 || len(m.Map) != 1 {
		t.Errorf("clone shares storage with original")
	}
}

func Test_ValueEqual(t *testing.T) {
	if !FloatValue(math.NaN()).Equal(FloatValue(math.NaN())) {
		t.Errorf("NaN should equal NaN")
	}
	if IntValue(1).Equal(FloatValue(1)) {
		t.Errorf("int and float must not compare equal")
	}
	if FloatArrayValue([]float64{1}).Equal(FloatArrayValue([]float64{1, 2})) {
		t.Errorf("different lengths compared equal")
	}
	a := NewNDArray(DTypeInt16, 2, 3)
	b := a.Clone()
	if !NDArrayValue(a).Equal(NDArrayValue(b)) {
		t.Errorf("cloned ndarray not equal")
	}
	b.Data[5] = 1
	if NDArrayValue(a).Equal(NDArrayValue(b)) {
		t.Errorf("modified ndarray compared equal")
	}
}

func Example_ndarray() {
	a, err := NewNDArrayFromData(DTypeFloat32, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	fmt.Println(err)
	fmt.Println(a.FrameSize(), a.Len())
	fr, err := a.Frame(1)
	fmt.Println(fr, err)
	_, err = a.Frame(2)
	fmt.Println(err)
	v, err := a.At(1, 0)
	fmt.Println(v, err)
	fmt.Println(a.MinMax())

	_, err = NewNDArrayFromData(DTypeFloat32, []int{2, 2}, []float64{1})
	fmt.Println(err)

	fmt.Println((&NDArray{DType: "complex128", Shape: []int{1}, Data: []float64{1}}).Validate())
	fmt.Println((&NDArray{DType: DTypeUInt8, Shape: []int{3}, Data: []float64{1}}).Validate())
	fmt.Println(NewNDArray(DTypeUInt8, 4).Validate())

	// Output:
	// <nil>
	// 3 6
	// [4 5 6] <nil>
	// frame 2 out of range, have 2
	// 4 <nil>
	// 1 6
	// shape [2 2] needs 4 elements, got 1
	// unsupported dtype: complex128
	// shape [3] needs 3 elements, got 1
	// <nil>
}

func Test_DTypeHolds(t *testing.T) {
	tests := []struct {
		dtype DType
		value float64
		want  bool
	}{
		{DTypeFloat64, 0.1, true},
		{DTypeFloat64, math.NaN(), true},
		{DTypeFloat32, 0.5, true},
		{DTypeFloat32, 0.1, false},
		{DTypeFloat32, math.NaN(), true},
		{DTypeFloat32, math.Inf(-1), true},
		{DTypeFloat32, 1e39, false},
		{DTypeInt64, -9007199254740992, true},
		{DTypeInt64, 1 << 63, false},
		{DTypeInt64, 2.5, false},
		{DTypeInt32, math.MaxInt32, true},
		{DTypeInt32, math.MaxInt32 + 1, false},
		{DTypeInt32, math.NaN(), false},
		{DTypeInt16, -32768, true},
		{DTypeInt16, 0.5, false},
		{DTypeInt16, 40000, false},
		{DTypeUInt16, 65535, true},
		{DTypeUInt16, -1, false},
		{DTypeUInt8, 255, true},
		{DTypeUInt8, 300, false},
		{DTypeUInt8, math.Inf(1), false},
		{"complex128", 1, false},
	}

	for _, tc := range tests {
		if got := tc.dtype.Holds(tc.value); got != tc.want {
			t.Errorf("%v.Holds(%v) = %v, want %v", tc.dtype, tc.value, got, tc.want)
		}
	}

	arr, _ := NewNDArrayFromData(DTypeUInt8, []int{2}, []float64{1, 300})
	if err := arr.Validate(); err == nil || err.Error() != "value 300 at index 1 can't be stored as uint8" {
		t.Errorf("unexpected validate result: %v", err)
	}
}

func Example_fields() {
	f := NewFields()
	fmt.Println(f.Set(tags.DetectorGeometryType, StringValue("SPHERE")))
	err := f.Set(tags.DetectorGeometryType, StringValue("TRIANGLE"))
	fmt.Println(err, dataerror.KindOf(err))
	v, _ := f.Get(tags.DetectorGeometryType)
	fmt.Println(v.SValue)

	err = f.Set("detector_colour", StringValue("red"))
	fmt.Println(dataerror.KindOf(err))

	f.SetRaw("detector_colour", StringValue("red"))
	f.SetRaw(string(tags.DetectorPosition), Vector3Value([3]float64{0.02, 0, 0}))
	fmt.Println(f.IDs(), f.ExtensionKeys(), f.Keys())
	fmt.Println(f.SetExtension(string(tags.UUID), StringValue("x")))
	fmt.Println(f.ToString())

	// Output:
	// <nil>
	// Unsupported detector_geometry_type: TRIANGLE InvalidArgument
	// SPHERE
	// InvalidArgument
	// [detector_geometry_type detector_position] [detector_colour] [detector_colour detector_geometry_type detector_position]
	// uuid is a registered tag, use Set
	// {detector_colour:"red" detector_geometry_type:"SPHERE" detector_position:[0.02 0 0]}
}

func Test_FieldsGetReturnsSnapshot(t *testing.T) {
	f := NewFields()
	if err := f.Set(tags.FieldOfView, Vector3Value([3]float64{1, 2, 3})); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, _ := f.Get(tags.FieldOfView)
	v.FArray[0] = 100

	c := f.Clone()
	c.Delete(tags.FieldOfView)

	again, ok := f.Get(tags.FieldOfView)
	if !ok || again.FArray[0] != 1 {
		t.Errorf("Fields internal state changed through a returned value")
	}
	if f.Equal(c) {
		t.Errorf("clone modification leaked back")
	}
}

func Test_ZeroFieldsUsable(t *testing.T) {
	var f Fields
	if _, ok := f.Get(tags.UUID); ok {
		t.Errorf("zero value reported a tag")
	}
	if err := f.Set(tags.UUID, StringValue("abc")); err != nil {
		t.Fatalf("Set on zero value failed: %v", err)
	}
	if !f.Has(tags.UUID) || f.Len() != 1 {
		t.Errorf("zero value did not store")
	}
}
