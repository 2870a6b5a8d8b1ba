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

package padata

import (
	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/tags"
)

// Small but complete acquisitions, used by tests across the module and by
// anyone wanting a file to try tools against

// MakeSampleDevice - one illuminator above the origin and one flat detector per channel
func MakeSampleDevice(uuid string, detectors int) device.DeviceMetaData {
	creator := device.NewDeviceMetaDataCreator()
	creator.SetGeneralInformation(uuid, [3]float64{0.03, 0.03, 0.03})

	ill := device.NewIlluminationElementCreator()
	ill.SetIlluminatorPosition([3]float64{0, 0, 0.05})
	ill.SetIlluminatorOrientation([3]float64{0, 0, -1})
	ill.SetIlluminatorGeometry([3]float64{0.005, 0, 0})
	ill.SetIlluminatorGeometryType(tags.GeometryCircular)
	ill.SetWavelengthRange([3]float64{700e-9, 900e-9, 1e-9})
	ill.SetBeamEnergyProfile([]float64{700e-9, 800e-9, 900e-9}, []float64{0.02, 0.025, 0.018})
	ill.SetPulseWidth(8e-9)
	creator.AddIlluminationElement(ill.GetDictionary())

	for c := 0; c < detectors; c++ {
		det := device.NewDetectionElementCreator()
		det.SetDetectorPosition([3]float64{0.001 * float64(c), 0, 0})
		det.SetDetectorOrientation([3]float64{0, 0, 1})
		det.SetDetectorGeometryType(tags.GeometryCuboid)
		det.SetDetectorGeometry([3]float64{0.0003, 0.005, 0.0001})
		det.SetFrequencyResponse([]float64{1e6, 5e6, 10e6}, []float64{0.6, 1, 0.4})
		creator.AddDetectionElement(det.GetDictionary())
	}

	return creator.FinalizeDeviceMetaData()
}

// MakeSampleAcquisition - every required acquisition tag for a float64 time
// series of the given shape recorded at one wavelength
func MakeSampleAcquisition(uuid string, deviceUUID string, frames int, samples int) metadata.Fields {
	f := metadata.NewFields()
	f.Set(tags.UUID, metadata.StringValue(uuid))
	f.Set(tags.Encoding, metadata.StringValue("raw"))
	f.Set(tags.Compression, metadata.StringValue("none"))
	f.Set(tags.DataType, metadata.StringValue(string(metadata.DTypeFloat64)))
	f.Set(tags.Dimensionality, metadata.StringValue(tags.DimensionalityTime))
	f.Set(tags.Sizes, metadata.IntArrayValue([]int64{int64(frames), int64(samples)}))
	f.Set(tags.PhotoacousticImagingDeviceReference, metadata.StringValue(deviceUUID))
	f.Set(tags.ADSamplingRate, metadata.FloatValue(40e6))
	f.Set(tags.AcquisitionWavelengths, metadata.FloatArrayValue([]float64{800e-9}))
	f.Set(tags.SpeedOfSound, metadata.FloatValue(1540))
	return f
}

// MakeSample - zero filled acquisition of frames x samples with one detector per frame
func MakeSample(deviceUUID string, frames int, samples int) *PAData {
	return NewPAData(
		metadata.NewNDArray(metadata.DTypeFloat64, frames, samples),
		MakeSampleAcquisition(deviceUUID+"-acq", deviceUUID, frames, samples),
		MakeSampleDevice(deviceUUID, frames),
	)
}
