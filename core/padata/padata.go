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

// Package padata holds one photoacoustic acquisition: the raw time series,
// the acquisition parameters and the description of the device that recorded
// it. Accessors are read-only snapshots, no validation is done here (see
// qualitycheck for that).
package padata

import (
	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/tags"
)

// Well known auxiliary datasets some vendors store next to the time series
const (
	UltrasoundImageData      = "ultrasound_image_data"
	UltrasoundImageTimestamp = "ultrasound_image_timestamps"
)

type PAData struct {
	BinaryTimeSeriesData *metadata.NDArray
	MetaDataAcquisition  metadata.Fields
	MetaDataDevice       device.DeviceMetaData

	// Top level datasets/groups other than the three above
	Extensions metadata.Map
}

// NewPAData - the container takes its own copy of everything passed in
func NewPAData(timeSeries *metadata.NDArray, acquisition metadata.Fields, dev device.DeviceMetaData) *PAData {
	return &PAData{
		BinaryTimeSeriesData: timeSeries.Clone(),
		MetaDataAcquisition:  acquisition.Clone(),
		MetaDataDevice:       dev.Clone(),
		Extensions:           metadata.Map{},
	}
}

func (p *PAData) Clone() *PAData {
	result := NewPAData(p.BinaryTimeSeriesData, p.MetaDataAcquisition, p.MetaDataDevice)
	if p.Extensions != nil {
		result.Extensions = p.Extensions.Clone()
	}
	return result
}

func (p *PAData) Equal(o *PAData) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.BinaryTimeSeriesData.Equal(o.BinaryTimeSeriesData) &&
		p.MetaDataAcquisition.Equal(o.MetaDataAcquisition) &&
		p.MetaDataDevice.Equal(o.MetaDataDevice) &&
		p.Extensions.Equal(o.Extensions)
}

// GetTimeSeriesData - snapshot of the raw data, nil if there is none
func (p *PAData) GetTimeSeriesData() *metadata.NDArray {
	return p.BinaryTimeSeriesData.Clone()
}

// NumberOfFrames - length of the outer axis of the time series
func (p *PAData) NumberOfFrames() int {
	if p.BinaryTimeSeriesData == nil || len(p.BinaryTimeSeriesData.Shape) == 0 {
		return 0
	}
	return p.BinaryTimeSeriesData.Shape[0]
}

func (p *PAData) GetFrame(idx int) ([]float64, error) {
	if p.BinaryTimeSeriesData == nil {
		return nil, dataerror.MakeMissingDerivedKeyError("binary_time_series_data")
	}
	return p.BinaryTimeSeriesData.Frame(idx)
}

// GetMeasurementTimeStamps - one timestamp per frame, if the acquisition recorded them
func (p *PAData) GetMeasurementTimeStamps() ([]float64, error) {
	return p.acquisitionFloats(tags.MeasurementTimestamps)
}

func (p *PAData) GetAcquisitionWavelengths() ([]float64, error) {
	return p.acquisitionFloats(tags.AcquisitionWavelengths)
}

func (p *PAData) GetPulseEnergies() ([]float64, error) {
	return p.acquisitionFloats(tags.PulseEnergy)
}

func (p *PAData) GetSpeedOfSound() (float64, error) {
	v, ok := p.MetaDataAcquisition.Get(tags.SpeedOfSound)
	if !ok {
		return 0, dataerror.MakeMissingDerivedKeyError(string(tags.SpeedOfSound))
	}
	f, ok := v.AsFloat()
	if !ok {
		return 0, dataerror.MakeMissingDerivedKeyError(string(tags.SpeedOfSound))
	}
	return f, nil
}

func (p *PAData) GetDeviceUUID() (string, error) {
	id, ok := p.MetaDataDevice.UniqueIdentifier()
	if !ok {
		return "", dataerror.MakeMissingDerivedKeyError(string(tags.UniqueIdentifier))
	}
	return id, nil
}

func (p *PAData) GetFieldOfView() ([3]float64, error) {
	fov, ok := p.MetaDataDevice.FieldOfView()
	if !ok {
		return fov, dataerror.MakeMissingDerivedKeyError(string(tags.FieldOfView))
	}
	return fov, nil
}

func (p *PAData) GetNumberOfIlluminators() (int, error) {
	n, ok := p.MetaDataDevice.NumberOfIlluminators()
	if !ok {
		return 0, dataerror.MakeMissingDerivedKeyError(string(tags.NumberOfIlluminators))
	}
	return n, nil
}

func (p *PAData) GetNumberOfDetectors() (int, error) {
	n, ok := p.MetaDataDevice.NumberOfDetectors()
	if !ok {
		return 0, dataerror.MakeMissingDerivedKeyError(string(tags.NumberOfDetectors))
	}
	return n, nil
}

// GetIlluminatorPositions - one position per illuminator, in element order
func (p *PAData) GetIlluminatorPositions() ([][3]float64, error) {
	return positions(p.MetaDataDevice.Illuminators, tags.IlluminatorPosition)
}

// GetDetectorPositions - one position per detector, in element order. This is
// also the channel order of the time series
func (p *PAData) GetDetectorPositions() ([][3]float64, error) {
	return positions(p.MetaDataDevice.Detectors, tags.DetectorPosition)
}

func (p *PAData) GetDetectorGeometryTypes() ([]string, error) {
	result := make([]string, 0, len(p.MetaDataDevice.Detectors))
	for _, e := range p.MetaDataDevice.Detectors {
		v, ok := e.Fields.Get(tags.DetectorGeometryType)
		if !ok || v.DataType != metadata.TypeString {
			return nil, dataerror.MakeMissingDerivedKeyError(e.Key() + "/" + string(tags.DetectorGeometryType))
		}
		result = append(result, v.SValue)
	}
	return result, nil
}

// GetAuxiliaryArray - an extra top level array dataset, eg ultrasound_image_data
func (p *PAData) GetAuxiliaryArray(key string) (*metadata.NDArray, error) {
	v, ok := p.Extensions[key]
	if !ok || v.DataType != metadata.TypeNDArray || v.Array == nil {
		return nil, dataerror.MakeMissingDerivedKeyError(key)
	}
	return v.Array.Clone(), nil
}

// SetAuxiliaryArray - stores an extra top level array dataset
func (p *PAData) SetAuxiliaryArray(key string, arr *metadata.NDArray) {
	if p.Extensions == nil {
		p.Extensions = metadata.Map{}
	}
	p.Extensions[key] = metadata.NDArrayValue(arr)
}

func (p *PAData) acquisitionFloats(id tags.ID) ([]float64, error) {
	v, ok := p.MetaDataAcquisition.Get(id)
	if !ok {
		return nil, dataerror.MakeMissingDerivedKeyError(string(id))
	}
	values, ok := v.AsFloats()
	if !ok {
		return nil, dataerror.MakeMissingDerivedKeyError(string(id))
	}
	return values, nil
}

func positions(elements []device.Element, id tags.ID) ([][3]float64, error) {
	result := make([][3]float64, 0, len(elements))
	for _, e := range elements {
		v, ok := e.Fields.Get(id)
		if !ok {
			return nil, dataerror.MakeMissingDerivedKeyError(e.Key() + "/" + string(id))
		}
		values, ok := v.AsFloats()
		if !ok || len(values) != 3 {
			return nil, dataerror.MakeMissingDerivedKeyError(e.Key() + "/" + string(id))
		}
		result = append(result, [3]float64{values[0], values[1], values[2]})
	}
	return result, nil
}
