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

package utils

import (
	"fmt"
	"time"
)

func Example_makeSaveableFileName() {
	fmt.Println(MakeSaveableFileName("dev-1"))
	fmt.Println(MakeSaveableFileName("Scanner/Probe 2"))
	fmt.Println(MakeSaveableFileName("  "))

	// Output:
	// dev-1
	// Scanner_Probe_2
	// unnamed
}

func Example_sliceHelpers() {
	fmt.Println(ItemInSlice("b", []string{"a", "b"}), ItemInSlice(3, []int{1, 2}))
	fmt.Println(GetSortedMapKeys(map[string]int{"z": 1, "a": 2, "m": 3}))
	fmt.Println(ConvertToFloats([]int16{-2, 7}))
	fmt.Println(ConvertFromFloats[uint8]([]float64{1.9, 200}))
	fmt.Println(ReverseCopy([]int{1, 2, 3}))

	// Output:
	// true false
	// [a m z]
	// [-2 7]
	// [1 200]
	// [3 2 1]
}

func Example_zipRoundTrip() {
	data, err := MakeZip([]ZipEntry{{Name: "a.txt", Data: []byte("hello")}, {Name: "sub/b.bin", Data: []byte{1, 2, 3}}}, time.Unix(1700000000, 0))
	fmt.Println(err)

	entries, err := ReadZip(data)
	fmt.Println(err)
	for _, e := range entries {
		fmt.Println(e.Name, e.Data)
	}

	_, err = ReadZip([]byte("not a zip"))
	fmt.Println(err != nil)

	// Output:
	// <nil>
	// <nil>
	// a.txt [104 101 108 108 111]
	// sub/b.bin [1 2 3]
	// true
}
