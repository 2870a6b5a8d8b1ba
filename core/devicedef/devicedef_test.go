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

package devicedef

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/qualitycheck"
	"github.com/ipasc/pacfish/core/tags"
)

func Example_readDeviceDefinitionFile() {
	def, err := ReadDeviceDefinitionFile("./test-data/scanner.yaml")
	fmt.Println(err)
	fmt.Println(def.UniqueIdentifier, len(def.Illuminators), len(def.Detectors))

	dev, err := def.Build()
	fmt.Println(err)
	fmt.Println(dev.NumberOfIlluminators())
	fmt.Println(dev.NumberOfDetectors())

	det, _ := dev.Detector(2)
	fmt.Println(det.Key(), det.Fields.ToString())

	det, _ = dev.Detector(0)
	response, _ := det.Fields.Get(tags.FrequencyResponse)
	fmt.Println(response.Rows)

	ill, _ := dev.Illuminator(0)
	profile, _ := ill.Fields.Get(tags.BeamEnergyProfile)
	fmt.Println(profile.Rows)

	fmt.Println(qualitycheck.CheckDeviceMetaData(dev))

	// Output:
	// <nil>
	// bench-scanner-01 1 3
	// <nil>
	// 1 true
	// 3 true
	// 0000000002 {detector_geometry:[0.0003 0.008 0.0001] detector_geometry_type:"CUBOID" detector_orientation:[0 0 1] detector_position:[0.002 0 0]}
	// [[1e+06 5e+06 9e+06] [0.4 1 0.4]]
	// [[7e-07 8e-07] [0.03 0.035]]
	// PASSED
}

func Example_curveMissingRow() {
	def, err := ParseDeviceDefinition([]byte("unique_identifier: x\nfield_of_view: [1, 2, 3]\ndetectors:\n  - frequency_response:\n      axis: [1e6, 5e6]\n"))
	fmt.Println(err)

	_, err = def.Build()
	fmt.Println(err)
	fmt.Println(dataerror.KindOf(err))

	// Output:
	// <nil>
	// detectors[0]: frequency_response needs both axis and values
	// InvalidArgument
}

func Example_badGeometryType() {
	def, err := ReadDeviceDefinitionFile("./test-data/bad-geometry.yaml")
	fmt.Println(err)

	_, err = def.Build()
	fmt.Println(err)
	fmt.Println(dataerror.KindOf(err))

	_, err = ReadDeviceDefinitionFile("./test-data/missing.yaml")
	fmt.Println(dataerror.KindOf(err))

	// Output:
	// <nil>
	// illuminators[0]: Unsupported illuminator_geometry_type: TRIANGLE
	// InvalidArgument
	// FileNotFound
}

func Example_wrongVectorLength() {
	def, err := ParseDeviceDefinition([]byte("unique_identifier: x\nfield_of_view: [1, 2]\n"))
	fmt.Println(err)

	_, err = def.Build()
	fmt.Println(err)

	def, _ = ParseDeviceDefinition([]byte("unique_identifier: x\nfield_of_view: [1, 2, 3]\ndetectors:\n  - position: [1]\n"))
	_, err = def.Build()
	fmt.Println(err)

	// Output:
	// <nil>
	// field_of_view must have 3 values, got 2
	// detectors[0]: position must have 3 values, got 1
}

func Test_TemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDeviceDefinitionTemplate(&buf); err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseDeviceDefinition(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(MakeTemplate(), parsed); diff != "" {
		t.Errorf("template did not survive YAML (-want +got):\n%v\n%v", diff, buf.String())
	}

	built, err := parsed.Build()
	if err != nil {
		t.Fatal(err)
	}
	if report := qualitycheck.CheckDeviceMetaData(built); !report.Passed {
		t.Errorf("template device fails the checker:\n%v", report)
	}

	if diff := cmp.Diff(MakeTemplate(), DefinitionFromDevice(built)); diff != "" {
		t.Errorf("DefinitionFromDevice mismatch (-want +got):\n%v", diff)
	}
}

func Test_DefinitionFromEmptyDevice(t *testing.T) {
	template, err := MakeTemplate().Build()
	if err != nil {
		t.Fatal(err)
	}

	def := DefinitionFromDevice(template)
	def.Illuminators = nil
	def.Detectors = nil

	dev, err := def.Build()
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := dev.NumberOfDetectors(); n != 0 {
		t.Errorf("expected no detectors, got %v", n)
	}
	if report := qualitycheck.CheckDeviceMetaData(dev); !report.Passed {
		t.Errorf("empty device should pass:\n%v", report)
	}
}
