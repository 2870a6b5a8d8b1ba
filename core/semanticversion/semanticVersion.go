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

package semanticversion

import (
	"fmt"
	"strconv"
	"strings"
)

// SemanticVersion - major.minor.patch, as stored in file headers
type SemanticVersion struct {
	Major int
	Minor int
	Patch int
}

func SemanticVersionFromString(v string) (SemanticVersion, error) {
	result := SemanticVersion{}

	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return result, fmt.Errorf("Invalid semantic version: %v", v)
	}
	nums := []int{}
	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 {
			return result, fmt.Errorf("Failed to parse version %v, part %v is not a number", v, part)
		}
		nums = append(nums, num)
	}

	result.Major = nums[0]
	result.Minor = nums[1]
	result.Patch = nums[2]

	return result, nil
}

func (v SemanticVersion) String() string {
	return fmt.Sprintf("%v.%v.%v", v.Major, v.Minor, v.Patch)
}

// Compare - -1 if v is older than o, 0 if equal, 1 if newer
func (v SemanticVersion) Compare(o SemanticVersion) int {
	a := []int{v.Major, v.Minor, v.Patch}
	b := []int{o.Major, o.Minor, o.Patch}
	for c := range a {
		if a[c] < b[c] {
			return -1
		}
		if a[c] > b[c] {
			return 1
		}
	}
	return 0
}

// CanRead - a reader at version v understands anything with the same major
// version, and anything older
func (v SemanticVersion) CanRead(o SemanticVersion) bool {
	return o.Major <= v.Major
}
