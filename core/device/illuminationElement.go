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
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/tags"
)

// IlluminationElementCreator - accumulates the fields of one illuminator. Units
// for each value are declared on the matching tag in the registry
type IlluminationElementCreator struct {
	illuminatorElement metadata.Fields
}

func NewIlluminationElementCreator() *IlluminationElementCreator {
	return &IlluminationElementCreator{illuminatorElement: metadata.NewFields()}
}

// SetIlluminatorPosition - x1, x2, x3 position of the illumination element
func (c *IlluminationElementCreator) SetIlluminatorPosition(position [3]float64) {
	c.set(tags.IlluminatorPosition, metadata.Vector3Value(position))
}

// SetIlluminatorOrientation - orientation of the element about the x1, x2, x3 axes
func (c *IlluminationElementCreator) SetIlluminatorOrientation(orientation [3]float64) {
	c.set(tags.IlluminatorOrientation, metadata.Vector3Value(orientation))
}

// SetIlluminatorGeometry - extent of the illuminator, interpreted according to its geometry type
func (c *IlluminationElementCreator) SetIlluminatorGeometry(shape [3]float64) {
	c.set(tags.IlluminatorGeometry, metadata.Vector3Value(shape))
}

// SetIlluminatorGeometryType - one of:
//
//	CIRCULAR - first value of the geometry is the radius of the circle
//	SPHERE   - first value of the geometry is the radius of the sphere
//	CUBOID   - extent in x, y and z before position and orientation are applied
//	MESH     - points and faces before position and orientation are applied
//
// Anything else is rejected and the element is left as it was
func (c *IlluminationElementCreator) SetIlluminatorGeometryType(geometryType string) error {
	return c.illuminatorElement.Set(tags.IlluminatorGeometryType, metadata.StringValue(geometryType))
}

// SetWavelengthRange - minimum wavelength, maximum wavelength and accuracy
func (c *IlluminationElementCreator) SetWavelengthRange(wlRange [3]float64) {
	c.set(tags.WavelengthRange, metadata.Vector3Value(wlRange))
}

// SetBeamEnergyProfile - laser energy per wavelength. The two slices are meant
// to be equally long, that's checked later by the consistency checker
func (c *IlluminationElementCreator) SetBeamEnergyProfile(wavelengths []float64, energy []float64) {
	c.set(tags.BeamEnergyProfile, metadata.PairedArrayValue(wavelengths, energy))
}

// SetBeamStabilityProfile - laser stability per wavelength
func (c *IlluminationElementCreator) SetBeamStabilityProfile(wavelengths []float64, stability []float64) {
	c.set(tags.BeamStabilityProfile, metadata.PairedArrayValue(wavelengths, stability))
}

func (c *IlluminationElementCreator) SetPulseWidth(pulseWidth float64) {
	c.set(tags.PulseWidth, metadata.FloatValue(pulseWidth))
}

// SetBeamIntensityProfile - beam intensity per wavelength
func (c *IlluminationElementCreator) SetBeamIntensityProfile(wavelengths []float64, intensity []float64) {
	c.set(tags.BeamIntensityProfile, metadata.PairedArrayValue(wavelengths, intensity))
}

// SetBeamDivergenceAngles - opening angle of the beam relative to the orientation
// vector, as the standard deviation of the beam divergence
func (c *IlluminationElementCreator) SetBeamDivergenceAngles(angle float64) {
	c.set(tags.BeamDivergenceAngles, metadata.FloatValue(angle))
}

// GetDictionary - deep copy of everything set so far
func (c *IlluminationElementCreator) GetDictionary() metadata.Fields {
	return c.illuminatorElement.Clone()
}

// All non-enumerated setters go through here; these tags can't fail validation
func (c *IlluminationElementCreator) set(id tags.ID, value metadata.Value) {
	if err := c.illuminatorElement.Set(id, value); err != nil {
		panic(err)
	}
}
