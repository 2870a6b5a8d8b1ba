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

package device

import (
	"fmt"
	"testing"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/tags"
)

func makeIlluminator(x float64) metadata.Fields {
	c := NewIlluminationElementCreator()
	c.SetIlluminatorPosition([3]float64{x, 0, 0.1})
	c.SetIlluminatorOrientation([3]float64{0, 0, 1})
	c.SetIlluminatorGeometry([3]float64{0.01, 0, 0})
	if err := c.SetIlluminatorGeometryType(tags.GeometryCircular); err != nil {
		panic(err)
	}
	c.SetWavelengthRange([3]float64{700e-9, 900e-9, 1e-9})
	c.SetBeamEnergyProfile([]float64{700e-9, 800e-9}, []float64{0.01, 0.012})
	c.SetBeamStabilityProfile([]float64{700e-9, 800e-9}, []float64{0.001, 0.001})
	c.SetPulseWidth(7e-9)
	c.SetBeamIntensityProfile([]float64{700e-9, 800e-9}, []float64{1, 0.9})
	c.SetBeamDivergenceAngles(0.2)
	return c.GetDictionary()
}

func makeDetector(x float64) metadata.Fields {
	c := NewDetectionElementCreator()
	c.SetDetectorPosition([3]float64{x, 0.02, 0})
	c.SetDetectorOrientation([3]float64{0, 1, 0})
	if err := c.SetDetectorGeometryType(tags.GeometryCuboid); err != nil {
		panic(err)
	}
	c.SetDetectorGeometry([3]float64{0.001, 0.001, 0.0001})
	c.SetFrequencyResponse([]float64{1e6, 5e6}, []float64{0.5, 1})
	c.SetAngularResponse([]float64{0, 1.5}, []float64{1, 0.1})
	return c.GetDictionary()
}

func Example_deviceMetaDataCreator() {
	c := NewDeviceMetaDataCreator()
	c.SetGeneralInformation("dev-1", [3]float64{0.1, 0.1, 0.02})
	c.AddIlluminationElement(makeIlluminator(0))
	c.AddDetectionElement(makeDetector(-0.01))
	c.AddDetectionElement(makeDetector(0.01))
	c.AddDetectionElement(makeDetector(0.03))

	d := c.FinalizeDeviceMetaData()
	fmt.Println(d.General.ToString())
	for _, e := range d.Illuminators {
		fmt.Println("illuminator", e.Key())
	}
	for _, e := range d.Detectors {
		fmt.Println("detector", e.Key())
	}

	// Output:
	// {field_of_view:[0.1 0.1 0.02] number_of_detectors:3 number_of_illuminators:1 unique_identifier:"dev-1"}
	// illuminator 0000000000
	// detector 0000000000
	// detector 0000000001
	// detector 0000000002
}

func Example_elementKey() {
	fmt.Println(ElementKey(0))
	fmt.Println(ElementKey(42))
	fmt.Println(ParseElementKey("0000000042"))
	_, err := ParseElementKey("00000000x2")
	fmt.Println(err)
	_, err = ParseElementKey("")
	fmt.Println(err)

	// Output:
	// 0000000000
	// 0000000042
	// 42 <nil>
	// invalid element key: 00000000x2
	// empty element key
}

func Example_emptyDevice() {
	d := NewDeviceMetaDataCreator().FinalizeDeviceMetaData()
	fmt.Println(d.General.ToString())
	fmt.Println(len(d.Illuminators), len(d.Detectors))

	// Output:
	// {number_of_detectors:0 number_of_illuminators:0}
	// 0 0
}

func Example_geometryTypeGuard() {
	c := NewIlluminationElementCreator()
	fmt.Println(c.SetIlluminatorGeometryType("SPHERE"))

	err := c.SetIlluminatorGeometryType("TRIANGLE")
	fmt.Println(err)
	fmt.Println(dataerror.KindOf(err))

	// Still the previously accepted value
	fmt.Println(c.GetDictionary().ToString())

	d := NewDetectionElementCreator()
	err = d.SetDetectorGeometryType("triangle")
	fmt.Println(dataerror.KindOf(err), d.GetDictionary().Len())

	// Output:
	// <nil>
	// Unsupported illuminator_geometry_type: TRIANGLE
	// InvalidArgument
	// {illuminator_geometry_type:"SPHERE"}
	// InvalidArgument 0
}

func Test_FinalizeIsIdempotent(t *testing.T) {
	c := NewDeviceMetaDataCreator()
	c.SetGeneralInformation("dev-1", [3]float64{1, 2, 3})
	c.AddIlluminationElement(makeIlluminator(0))
	c.AddDetectionElement(makeDetector(0))

	first := c.FinalizeDeviceMetaData()
	second := c.FinalizeDeviceMetaData()
	if !first.Equal(second) {
		t.Errorf("finalize not idempotent:\n%v\n%v", first.General.ToString(), second.General.ToString())
	}

	c.AddDetectionElement(makeDetector(1))
	third := c.FinalizeDeviceMetaData()
	if n, _ := third.NumberOfDetectors(); n != 2 {
		t.Errorf("expected 2 detectors, got %v", n)
	}
	if n, _ := first.NumberOfDetectors(); n != 1 {
		t.Errorf("earlier result changed, has %v detectors", n)
	}
}

func Test_SetGeneralInformationOverwrites(t *testing.T) {
	c := NewDeviceMetaDataCreator()
	c.SetGeneralInformation("dev-1", [3]float64{1, 2, 3})
	c.SetGeneralInformation("dev-2", [3]float64{0.1, 0.2, 0.3})
	dev := c.FinalizeDeviceMetaData()

	if uuid, ok := dev.UniqueIdentifier(); !ok || uuid != "dev-2" {
		t.Errorf("unexpected uuid %q (%v)", uuid, ok)
	}
	if fov, ok := dev.FieldOfView(); !ok || fov != [3]float64{0.1, 0.2, 0.3} {
		t.Errorf("unexpected field of view %v (%v)", fov, ok)
	}
	if ids := dev.General.IDs(); len(ids) != 4 {
		t.Errorf("expected 4 general tags, got %v", ids)
	}
}

func Test_FinalizeReturnsIndependentCopy(t *testing.T) {
	c := NewDeviceMetaDataCreator()
	c.SetGeneralInformation("dev-1", [3]float64{1, 2, 3})
	c.AddDetectionElement(makeDetector(0))

	d := c.FinalizeDeviceMetaData()
	d.General.Set(tags.UniqueIdentifier, metadata.StringValue("changed"))
	d.Detectors[0].Fields.Set(tags.DetectorPosition, metadata.Vector3Value([3]float64{9, 9, 9}))
	d.Detectors = append(d.Detectors, Element{ID: 7})

	again := c.FinalizeDeviceMetaData()
	if id, _ := again.UniqueIdentifier(); id != "dev-1" {
		t.Errorf("creator general section changed through returned copy: %v", id)
	}
	if len(again.Detectors) != 1 {
		t.Errorf("creator element list changed through returned copy")
	}
	pos, _ := again.Detectors[0].Fields.Get(tags.DetectorPosition)
	if pos.FArray[0] != 0 {
		t.Errorf("creator element changed through returned copy: %v", pos.ToString())
	}
}

func Test_AddElementCopiesInput(t *testing.T) {
	fields := makeIlluminator(0)
	c := NewDeviceMetaDataCreator()
	c.AddIlluminationElement(fields)

	fields.Set(tags.PulseWidth, metadata.FloatValue(1))

	d := c.FinalizeDeviceMetaData()
	v, _ := d.Illuminators[0].Fields.Get(tags.PulseWidth)
	if v.FValue != 7e-9 {
		t.Errorf("element changed after being added: %v", v.FValue)
	}
}

func Test_GetDictionaryIsIndependent(t *testing.T) {
	c := NewDetectionElementCreator()
	c.SetDetectorPosition([3]float64{1, 2, 3})

	dict := c.GetDictionary()
	dict.Set(tags.DetectorPosition, metadata.Vector3Value([3]float64{4, 5, 6}))
	dict.Delete(tags.DetectorPosition)

	v, ok := c.GetDictionary().Get(tags.DetectorPosition)
	if !ok || v.FArray[0] != 1 {
		t.Errorf("creator state changed through dictionary: %v", v.ToString())
	}
}

func Test_PairedArraysNotCrossValidated(t *testing.T) {
	c := NewDetectionElementCreator()
	c.SetFrequencyResponse([]float64{1, 2, 3}, []float64{1})

	v, ok := c.GetDictionary().Get(tags.FrequencyResponse)
	if !ok || len(v.Rows) != 2 || len(v.Rows[0]) != 3 || len(v.Rows[1]) != 1 {
		t.Errorf("unexpected paired value: %v", v.ToString())
	}
}

func Test_Lookups(t *testing.T) {
	c := NewDeviceMetaDataCreator()
	c.SetGeneralInformation("abc", [3]float64{0.1, 0.2, 0.3})
	c.AddIlluminationElement(makeIlluminator(-0.5))
	c.AddDetectionElement(makeDetector(0.5))
	d := c.FinalizeDeviceMetaData()

	if fov, ok := d.FieldOfView(); !ok || fov != [3]float64{0.1, 0.2, 0.3} {
		t.Errorf("bad fov: %v", fov)
	}
	if n, ok := d.NumberOfIlluminators(); !ok || n != 1 {
		t.Errorf("bad illuminator count: %v", n)
	}
	if _, ok := d.Illuminator(0); !ok {
		t.Errorf("illuminator 0 not found")
	}
	if _, ok := d.Detector(1); ok {
		t.Errorf("detector 1 should not exist")
	}

	mins, maxs := d.Extent()
	if mins != [3]float64{-0.5, 0, 0} || maxs != [3]float64{0.5, 0.2, 0.3} {
		t.Errorf("bad extent: %v %v", mins, maxs)
	}

	empty := DeviceMetaData{}
	mins, maxs = empty.Extent()
	if mins != [3]float64{} || maxs != [3]float64{} {
		t.Errorf("expected zero extent for empty device: %v %v", mins, maxs)
	}
}
