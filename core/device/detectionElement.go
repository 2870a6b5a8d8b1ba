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

// DetectionElementCreator - accumulates the fields of one detector
type DetectionElementCreator struct {
	detectionElement metadata.Fields
}

func NewDetectionElementCreator() *DetectionElementCreator {
	return &DetectionElementCreator{detectionElement: metadata.NewFields()}
}

func (c *DetectionElementCreator) SetDetectorPosition(position [3]float64) {
	c.set(tags.DetectorPosition, metadata.Vector3Value(position))
}

func (c *DetectionElementCreator) SetDetectorOrientation(orientation [3]float64) {
	c.set(tags.DetectorOrientation, metadata.Vector3Value(orientation))
}

// SetDetectorGeometryType - CIRCULAR, SPHERE, CUBOID or MESH, see
// IlluminationElementCreator.SetIlluminatorGeometryType for their meaning
func (c *DetectionElementCreator) SetDetectorGeometryType(geometryType string) error {
	return c.detectionElement.Set(tags.DetectorGeometryType, metadata.StringValue(geometryType))
}

// SetDetectorGeometry - extent of the detector in x1, x2, x3
func (c *DetectionElementCreator) SetDetectorGeometry(size [3]float64) {
	c.set(tags.DetectorGeometry, metadata.Vector3Value(size))
}

// SetFrequencyResponse - [frequency, response], lengths are not compared here
func (c *DetectionElementCreator) SetFrequencyResponse(frequencies []float64, response []float64) {
	c.set(tags.FrequencyResponse, metadata.PairedArrayValue(frequencies, response))
}

// SetAngularResponse - [angles, response], lengths are not compared here
func (c *DetectionElementCreator) SetAngularResponse(angles []float64, response []float64) {
	c.set(tags.AngularResponse, metadata.PairedArrayValue(angles, response))
}

func (c *DetectionElementCreator) GetDictionary() metadata.Fields {
	return c.detectionElement.Clone()
}

func (c *DetectionElementCreator) set(id tags.ID, value metadata.Value) {
	if err := c.detectionElement.Set(id, value); err != nil {
		panic(err)
	}
}
