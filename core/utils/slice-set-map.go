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

// Small helpers shared by the packages of this module: generic slice/map
// functions and building zip archives in memory
package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Simple Go helper functions
// stuff that you'd expect to be part of the std lib but aren't

func ItemInSlice[T comparable](a T, list []T) bool {
	return slices.Contains(list, a)
}

// GetSortedMapKeys - keys of a map in ascending order, for deterministic iteration
func GetSortedMapKeys[K constraints.Ordered, V any](theMap map[K]V) []K {
	keys := maps.Keys(theMap)
	slices.Sort(keys)
	return keys
}

func ConvertToFloats[F constraints.Integer | constraints.Float](from []F) []float64 {
	res := make([]float64, len(from))
	for i, e := range from {
		res[i] = float64(e)
	}
	return res
}

// ConvertFromFloats - truncates towards zero for integer targets
func ConvertFromFloats[T constraints.Integer | constraints.Float](from []float64) []T {
	res := make([]T, len(from))
	for i, e := range from {
		res[i] = T(e)
	}
	return res
}

// ReverseCopy - new slice with the items of from in reverse order
func ReverseCopy[T any](from []T) []T {
	res := make([]T, len(from))
	for i, e := range from {
		res[len(from)-1-i] = e
	}
	return res
}
