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

// Package device models the description of a photoacoustic acquisition device:
// general information plus ordered lists of illumination and detection
// elements, along with the creators used to build them up.
package device

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/tags"
)

// ElementKeyWidth - element IDs are zero padded to this many digits when used as keys
const ElementKeyWidth = 10

// Element - one illuminator or detector. ID is stable for the lifetime of the
// device and is what the element is keyed by in a file
type Element struct {
	ID     int
	Fields metadata.Fields
}

// Key - the zero-padded form of the ID, eg 0000000003
func (e Element) Key() string {
	return ElementKey(e.ID)
}

func ElementKey(id int) string {
	return fmt.Sprintf("%0*d", ElementKeyWidth, id)
}

// ParseElementKey - reverse of ElementKey. Only plain decimal keys are accepted
func ParseElementKey(key string) (int, error) {
	if len(key) == 0 {
		return 0, fmt.Errorf("empty element key")
	}
	for _, ch := range key {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid element key: %v", key)
		}
	}
	return strconv.Atoi(key)
}

func (e Element) Clone() Element {
	return Element{ID: e.ID, Fields: e.Fields.Clone()}
}

// DeviceMetaData - full description of an acquisition device
type DeviceMetaData struct {
	General      metadata.Fields
	Illuminators []Element
	Detectors    []Element

	// Device level groups not known to this version, kept so they're written back out
	Extensions metadata.Map
}

func (d DeviceMetaData) Clone() DeviceMetaData {
	result := DeviceMetaData{
		General:      d.General.Clone(),
		Illuminators: cloneElements(d.Illuminators),
		Detectors:    cloneElements(d.Detectors),
		Extensions:   d.Extensions.Clone(),
	}
	if result.Extensions == nil {
		result.Extensions = metadata.Map{}
	}
	return result
}

func (d DeviceMetaData) Equal(o DeviceMetaData) bool {
	return d.General.Equal(o.General) &&
		elementsEqual(d.Illuminators, o.Illuminators) &&
		elementsEqual(d.Detectors, o.Detectors) &&
		d.Extensions.Equal(o.Extensions)
}

// UniqueIdentifier - device UUID from the general section
func (d DeviceMetaData) UniqueIdentifier() (string, bool) {
	v, ok := d.General.Get(tags.UniqueIdentifier)
	if !ok || v.DataType != metadata.TypeString {
		return "", false
	}
	return v.SValue, true
}

// FieldOfView - from the general section
func (d DeviceMetaData) FieldOfView() ([3]float64, bool) {
	return vector3(d.General, tags.FieldOfView)
}

// NumberOfIlluminators - the count stored in the general section. Only
// guaranteed to match len(Illuminators) after finalizing
func (d DeviceMetaData) NumberOfIlluminators() (int, bool) {
	return count(d.General, tags.NumberOfIlluminators)
}

func (d DeviceMetaData) NumberOfDetectors() (int, bool) {
	return count(d.General, tags.NumberOfDetectors)
}

// Illuminator - snapshot of the element with the given ID
func (d DeviceMetaData) Illuminator(id int) (Element, bool) {
	return findElement(d.Illuminators, id)
}

func (d DeviceMetaData) Detector(id int) (Element, bool) {
	return findElement(d.Detectors, id)
}

// Extent - axis aligned box enclosing every element position and the field
// of view (which starts at the origin). Consumers drawing the device use it to
// size their projections
func (d DeviceMetaData) Extent() (mins [3]float64, maxs [3]float64) {
	mins = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	maxs = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

	include := func(p [3]float64) {
		for c := 0; c < 3; c++ {
			mins[c] = math.Min(mins[c], p[c])
			maxs[c] = math.Max(maxs[c], p[c])
		}
	}

	for _, e := range d.Illuminators {
		if p, ok := vector3(e.Fields, tags.IlluminatorPosition); ok {
			include(p)
		}
	}
	for _, e := range d.Detectors {
		if p, ok := vector3(e.Fields, tags.DetectorPosition); ok {
			include(p)
		}
	}
	if fov, ok := d.FieldOfView(); ok {
		include([3]float64{})
		include(fov)
	}

	if math.IsInf(mins[0], 1) {
		return [3]float64{}, [3]float64{}
	}
	return mins, maxs
}

func vector3(f metadata.Fields, id tags.ID) ([3]float64, bool) {
	var result [3]float64
	v, ok := f.Get(id)
	if !ok {
		return result, false
	}
	values, ok := v.AsFloats()
	if !ok || len(values) != 3 {
		return result, false
	}
	copy(result[:], values)
	return result, true
}

func count(f metadata.Fields, id tags.ID) (int, bool) {
	v, ok := f.Get(id)
	if !ok {
		return 0, false
	}
	i, ok := v.AsInt()
	return int(i), ok
}

func findElement(elements []Element, id int) (Element, bool) {
	for _, e := range elements {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return Element{}, false
}

func cloneElements(elements []Element) []Element {
	result := make([]Element, len(elements))
	for c, e := range elements {
		result[c] = e.Clone()
	}
	return result
}

func elementsEqual(a []Element, b []Element) bool {
	if len(a) != len(b) {
		return false
	}
	for c := range a {
		if a[c].ID != b[c].ID || !a[c].Fields.Equal(b[c].Fields) {
			return false
		}
	}
	return true
}
