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

package tags

import (
	"fmt"
	"testing"
)

func Example_lookup() {
	t, ok := Lookup(DetectorPosition)
	fmt.Printf("%v|%v\n", ok, t)

	t, ok = Lookup(FrequencyResponse)
	fmt.Printf("%v|%v|paired=%v\n", ok, t, t.Paired)

	_, ok = Lookup("detector_colour")
	fmt.Println(ok, IsKnown("detector_colour"), IsKnown("uuid"))

	gt := MustLookup(IlluminatorGeometryType)
	fmt.Println(gt.Allowed(), gt.IsAllowed("SPHERE"), gt.IsAllowed("TRIANGLE"))

	// Output:
	// true|detector_position (Detector position, number array, unit: m, required)
	// true|frequency_response (Frequency response, number array, unit: Hz, none, optional)|paired=true
	// false false true
	// [CIRCULAR SPHERE CUBOID MESH] true false
}

func Example_requiredForScope() {
	fmt.Println(RequiredForScope(ScopeGeneral))
	fmt.Println(RequiredForScope(ScopeDetector))
	fmt.Println(RequiredForScope(ScopeIlluminator))
	fmt.Println(len(ForScope(ScopeAcquisition)), ScopeAcquisition, TypeEnumString)

	// Output:
	// [field_of_view number_of_detectors number_of_illuminators unique_identifier]
	// [detector_geometry detector_geometry_type detector_orientation detector_position]
	// [illuminator_geometry illuminator_geometry_type illuminator_orientation illuminator_position wavelength_range]
	// 20 acquisition enumerated string
}

func Test_RegistryIdentifiersUnique(t *testing.T) {
	seen := map[ID]bool{}
	for _, tag := range All() {
		if seen[tag.ID] {
			t.Errorf("duplicate tag %v", tag.ID)
		}
		seen[tag.ID] = true

		if len(tag.Unit) == 0 {
			t.Errorf("tag %v has no unit", tag.ID)
		}
		if tag.Type == TypeEnumString && len(tag.Allowed()) == 0 {
			t.Errorf("enumerated tag %v has no allowed values", tag.ID)
		}
		if tag.Paired && tag.Type != TypeNumberArray {
			t.Errorf("paired tag %v is not a number array", tag.ID)
		}
	}
}

func Test_AllowedReturnsCopy(t *testing.T) {
	allowed := MustLookup(DetectorGeometryType).Allowed()
	allowed[0] = "TRIANGLE"

	if !IsValidGeometryType(GeometryCircular) || IsValidGeometryType("TRIANGLE") {
		t.Errorf("registry was modified through Allowed()")
	}

	g := GeometryTypes()
	g[1] = "CONE"
	if GeometryTypes()[1] != GeometrySphere {
		t.Errorf("registry was modified through GeometryTypes()")
	}
}

func Test_MustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unknown tag")
		}
	}()
	MustLookup("not_a_tag")
}
