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

// DeviceMetaDataCreator - aggregates elements and general information into a
// DeviceMetaData. Elements get sequential IDs starting at 0 in the order they
// are added, and that order is the default channel ordering of the device
type DeviceMetaDataCreator struct {
	device             DeviceMetaData
	nextDetectorUID    int
	nextIlluminatorUID int
}

func NewDeviceMetaDataCreator() *DeviceMetaDataCreator {
	return &DeviceMetaDataCreator{
		device: DeviceMetaData{
			General:      metadata.NewFields(),
			Illuminators: []Element{},
			Detectors:    []Element{},
			Extensions:   metadata.Map{},
		},
	}
}

// SetGeneralInformation - uuid uniquely identifies the device (no check is
// made against other devices), fov is the extent of the field of view in x1, x2, x3
func (c *DeviceMetaDataCreator) SetGeneralInformation(uuid string, fov [3]float64) {
	c.set(tags.UniqueIdentifier, metadata.StringValue(uuid))
	c.set(tags.FieldOfView, metadata.Vector3Value(fov))
}

func (c *DeviceMetaDataCreator) AddDetectionElement(detectionElement metadata.Fields) {
	c.device.Detectors = append(c.device.Detectors, Element{ID: c.nextDetectorUID, Fields: detectionElement.Clone()})
	c.nextDetectorUID++
}

func (c *DeviceMetaDataCreator) AddIlluminationElement(illuminationElement metadata.Fields) {
	c.device.Illuminators = append(c.device.Illuminators, Element{ID: c.nextIlluminatorUID, Fields: illuminationElement.Clone()})
	c.nextIlluminatorUID++
}

// FinalizeDeviceMetaData - overwrites the element counts in the general section
// with the current list sizes and returns a copy of the whole description.
// Calling it again without adding anything gives an identical result
func (c *DeviceMetaDataCreator) FinalizeDeviceMetaData() DeviceMetaData {
	c.set(tags.NumberOfDetectors, metadata.IntValue(int64(len(c.device.Detectors))))
	c.set(tags.NumberOfIlluminators, metadata.IntValue(int64(len(c.device.Illuminators))))

	return c.device.Clone()
}

// Same contract as the element creators: general tags set here always pass validation
func (c *DeviceMetaDataCreator) set(id tags.ID, value metadata.Value) {
	if err := c.device.General.Set(id, value); err != nil {
		panic(err)
	}
}
