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

// Package devicedef reads and writes YAML descriptions of imaging devices.
// A definition is never trusted as-is: it is replayed through the element
// builders, so the same guards apply as when building a device in code.
package devicedef

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/tags"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	yml "gopkg.in/yaml.v2"
)

// DefaultFileName - what converters look for next to the files they import
const DefaultFileName = "device.yaml"

// Curve - a paired array, eg response per frequency. Keys avoid "y", which YAML 1.1 reads as a boolean
type Curve struct {
	Axis   []float64 `koanf:"axis" yaml:"axis"`
	Values []float64 `koanf:"values" yaml:"values"`
}

type IlluminatorDefinition struct {
	Position             []float64 `koanf:"position" yaml:"position"`
	Orientation          []float64 `koanf:"orientation" yaml:"orientation"`
	Geometry             []float64 `koanf:"geometry" yaml:"geometry"`
	GeometryType         string    `koanf:"geometry_type" yaml:"geometry_type"`
	WavelengthRange      []float64 `koanf:"wavelength_range" yaml:"wavelength_range"`
	PulseWidth           *float64  `koanf:"pulse_width" yaml:"pulse_width,omitempty"`
	BeamDivergenceAngles *float64  `koanf:"beam_divergence_angles" yaml:"beam_divergence_angles,omitempty"`
	BeamEnergyProfile    *Curve    `koanf:"beam_energy_profile" yaml:"beam_energy_profile,omitempty"`
	BeamStabilityProfile *Curve    `koanf:"beam_stability_profile" yaml:"beam_stability_profile,omitempty"`
	BeamIntensityProfile *Curve    `koanf:"beam_intensity_profile" yaml:"beam_intensity_profile,omitempty"`
}

type DetectorDefinition struct {
	Position          []float64 `koanf:"position" yaml:"position"`
	Orientation       []float64 `koanf:"orientation" yaml:"orientation"`
	Geometry          []float64 `koanf:"geometry" yaml:"geometry"`
	GeometryType      string    `koanf:"geometry_type" yaml:"geometry_type"`
	FrequencyResponse *Curve    `koanf:"frequency_response" yaml:"frequency_response,omitempty"`
	AngularResponse   *Curve    `koanf:"angular_response" yaml:"angular_response,omitempty"`
}

// DeviceDefinition - the YAML layout. Positions, orientations and geometries
// are 3 numbers each, in the units the tag registry declares
type DeviceDefinition struct {
	UniqueIdentifier string                  `koanf:"unique_identifier" yaml:"unique_identifier"`
	FieldOfView      []float64               `koanf:"field_of_view" yaml:"field_of_view"`
	Illuminators     []IlluminatorDefinition `koanf:"illuminators" yaml:"illuminators"`
	Detectors        []DetectorDefinition    `koanf:"detectors" yaml:"detectors"`
}

// ReadDeviceDefinitionFile - loads a definition from a local YAML file
func ReadDeviceDefinitionFile(path string) (DeviceDefinition, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DeviceDefinition{}, dataerror.MakeFileNotFoundError(path, err)
		}
		return DeviceDefinition{}, err
	}
	return load(file.Provider(path), path)
}

// ParseDeviceDefinition - same as ReadDeviceDefinitionFile, for YAML already
// read from somewhere else (eg S3)
func ParseDeviceDefinition(raw []byte) (DeviceDefinition, error) {
	return load(rawbytes.Provider(raw), "device definition")
}

func load(provider koanf.Provider, name string) (DeviceDefinition, error) {
	result := DeviceDefinition{}

	k := koanf.New(".")
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return result, dataerror.MakeInvalidArgumentError(fmt.Errorf("Failed to parse %v: %v", name, err))
	}
	if err := k.Unmarshal("", &result); err != nil {
		return result, dataerror.MakeInvalidArgumentError(fmt.Errorf("Failed to read %v: %v", name, err))
	}
	return result, nil
}

// Build - runs the definition through the device builders
func (d DeviceDefinition) Build() (device.DeviceMetaData, error) {
	fov, err := vector3(d.FieldOfView, "field_of_view")
	if err != nil {
		return device.DeviceMetaData{}, err
	}

	creator := device.NewDeviceMetaDataCreator()
	creator.SetGeneralInformation(d.UniqueIdentifier, fov)

	for c, ill := range d.Illuminators {
		fields, err := ill.build()
		if err != nil {
			return device.DeviceMetaData{}, fmt.Errorf("illuminators[%v]: %w", c, err)
		}
		creator.AddIlluminationElement(fields)
	}
	for c, det := range d.Detectors {
		fields, err := det.build()
		if err != nil {
			return device.DeviceMetaData{}, fmt.Errorf("detectors[%v]: %w", c, err)
		}
		creator.AddDetectionElement(fields)
	}

	return creator.FinalizeDeviceMetaData(), nil
}

func (ill IlluminatorDefinition) build() (metadata.Fields, error) {
	creator := device.NewIlluminationElementCreator()

	vectors := []vectorSetter{
		{ill.Position, "position", creator.SetIlluminatorPosition},
		{ill.Orientation, "orientation", creator.SetIlluminatorOrientation},
		{ill.Geometry, "geometry", creator.SetIlluminatorGeometry},
		{ill.WavelengthRange, "wavelength_range", creator.SetWavelengthRange},
	}
	if err := setVectors(vectors); err != nil {
		return metadata.Fields{}, err
	}

	if len(ill.GeometryType) > 0 {
		if err := creator.SetIlluminatorGeometryType(ill.GeometryType); err != nil {
			return metadata.Fields{}, err
		}
	}
	if ill.PulseWidth != nil {
		creator.SetPulseWidth(*ill.PulseWidth)
	}
	if ill.BeamDivergenceAngles != nil {
		creator.SetBeamDivergenceAngles(*ill.BeamDivergenceAngles)
	}

	curves := []curveSetter{
		{ill.BeamEnergyProfile, "beam_energy_profile", creator.SetBeamEnergyProfile},
		{ill.BeamStabilityProfile, "beam_stability_profile", creator.SetBeamStabilityProfile},
		{ill.BeamIntensityProfile, "beam_intensity_profile", creator.SetBeamIntensityProfile},
	}
	if err := setCurves(curves); err != nil {
		return metadata.Fields{}, err
	}

	return creator.GetDictionary(), nil
}

func (det DetectorDefinition) build() (metadata.Fields, error) {
	creator := device.NewDetectionElementCreator()

	vectors := []vectorSetter{
		{det.Position, "position", creator.SetDetectorPosition},
		{det.Orientation, "orientation", creator.SetDetectorOrientation},
		{det.Geometry, "geometry", creator.SetDetectorGeometry},
	}
	if err := setVectors(vectors); err != nil {
		return metadata.Fields{}, err
	}

	if len(det.GeometryType) > 0 {
		if err := creator.SetDetectorGeometryType(det.GeometryType); err != nil {
			return metadata.Fields{}, err
		}
	}

	curves := []curveSetter{
		{det.FrequencyResponse, "frequency_response", creator.SetFrequencyResponse},
		{det.AngularResponse, "angular_response", creator.SetAngularResponse},
	}
	if err := setCurves(curves); err != nil {
		return metadata.Fields{}, err
	}

	return creator.GetDictionary(), nil
}

type vectorSetter struct {
	values []float64
	name   string
	set    func([3]float64)
}

// Vectors left out of the YAML are left out of the element, the checker reports them
func setVectors(vectors []vectorSetter) error {
	for _, v := range vectors {
		if len(v.values) == 0 {
			continue
		}
		vec, err := vector3(v.values, v.name)
		if err != nil {
			return err
		}
		v.set(vec)
	}
	return nil
}

type curveSetter struct {
	curve *Curve
	name  string
	set   func(axis []float64, values []float64)
}

// A curve given in the YAML needs both rows. Their lengths are left to the checker
func setCurves(curves []curveSetter) error {
	for _, c := range curves {
		if c.curve == nil {
			continue
		}
		if len(c.curve.Axis) == 0 || len(c.curve.Values) == 0 {
			return dataerror.MakeInvalidArgumentError(fmt.Errorf("%v needs both axis and values", c.name))
		}
		c.set(c.curve.Axis, c.curve.Values)
	}
	return nil
}

func vector3(values []float64, name string) ([3]float64, error) {
	result := [3]float64{}
	if len(values) != 3 {
		return result, dataerror.MakeInvalidArgumentError(fmt.Errorf("%v must have 3 values, got %v", name, len(values)))
	}
	copy(result[:], values)
	return result, nil
}

// DefinitionFromDevice - reverse of Build. Element extensions have no place
// in the YAML layout and are not carried over
func DefinitionFromDevice(dev device.DeviceMetaData) DeviceDefinition {
	result := DeviceDefinition{
		Illuminators: []IlluminatorDefinition{},
		Detectors:    []DetectorDefinition{},
	}
	result.UniqueIdentifier, _ = dev.UniqueIdentifier()
	if fov, ok := dev.FieldOfView(); ok {
		result.FieldOfView = fov[:]
	}

	for _, elem := range dev.Illuminators {
		f := elem.Fields
		result.Illuminators = append(result.Illuminators, IlluminatorDefinition{
			Position:             floats(f, tags.IlluminatorPosition),
			Orientation:          floats(f, tags.IlluminatorOrientation),
			Geometry:             floats(f, tags.IlluminatorGeometry),
			GeometryType:         str(f, tags.IlluminatorGeometryType),
			WavelengthRange:      floats(f, tags.WavelengthRange),
			PulseWidth:           number(f, tags.PulseWidth),
			BeamDivergenceAngles: number(f, tags.BeamDivergenceAngles),
			BeamEnergyProfile:    curve(f, tags.BeamEnergyProfile),
			BeamStabilityProfile: curve(f, tags.BeamStabilityProfile),
			BeamIntensityProfile: curve(f, tags.BeamIntensityProfile),
		})
	}

	for _, elem := range dev.Detectors {
		f := elem.Fields
		result.Detectors = append(result.Detectors, DetectorDefinition{
			Position:          floats(f, tags.DetectorPosition),
			Orientation:       floats(f, tags.DetectorOrientation),
			Geometry:          floats(f, tags.DetectorGeometry),
			GeometryType:      str(f, tags.DetectorGeometryType),
			FrequencyResponse: curve(f, tags.FrequencyResponse),
			AngularResponse:   curve(f, tags.AngularResponse),
		})
	}

	return result
}

func floats(f metadata.Fields, id tags.ID) []float64 {
	if v, ok := f.Get(id); ok {
		if values, ok := v.AsFloats(); ok {
			return values
		}
	}
	return nil
}

func str(f metadata.Fields, id tags.ID) string {
	if v, ok := f.Get(id); ok && v.DataType == metadata.TypeString {
		return v.SValue
	}
	return ""
}

func number(f metadata.Fields, id tags.ID) *float64 {
	if v, ok := f.Get(id); ok {
		if n, ok := v.AsFloat(); ok {
			return &n
		}
	}
	return nil
}

func curve(f metadata.Fields, id tags.ID) *Curve {
	if v, ok := f.Get(id); ok && v.DataType == metadata.TypePairedArray && len(v.Rows) == 2 {
		return &Curve{Axis: v.Rows[0], Values: v.Rows[1]}
	}
	return nil
}

// WriteDeviceDefinition - YAML form of a definition, readable by ReadDeviceDefinitionFile
func WriteDeviceDefinition(w io.Writer, def DeviceDefinition) error {
	enc := yml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(def)
}

// WriteDeviceDefinitionTemplate - a filled in example definition to start from
func WriteDeviceDefinitionTemplate(w io.Writer) error {
	return WriteDeviceDefinition(w, MakeTemplate())
}

// MakeTemplate - one illuminator above two detectors
func MakeTemplate() DeviceDefinition {
	pulseWidth := 7e-9
	divergence := 0.1
	return DeviceDefinition{
		UniqueIdentifier: "my-device",
		FieldOfView:      []float64{0.03, 0.03, 0.03},
		Illuminators: []IlluminatorDefinition{
			{
				Position:             []float64{0, 0, 0.05},
				Orientation:          []float64{0, 0, -1},
				Geometry:             []float64{0.005, 0, 0},
				GeometryType:         tags.GeometryCircular,
				WavelengthRange:      []float64{700e-9, 900e-9, 1e-9},
				PulseWidth:           &pulseWidth,
				BeamDivergenceAngles: &divergence,
				BeamEnergyProfile:    &Curve{Axis: []float64{700e-9, 800e-9, 900e-9}, Values: []float64{0.02, 0.025, 0.02}},
			},
		},
		Detectors: []DetectorDefinition{
			{
				Position:          []float64{-0.001, 0, 0},
				Orientation:       []float64{0, 0, 1},
				Geometry:          []float64{0.0005, 0.01, 0.0001},
				GeometryType:      tags.GeometryCuboid,
				FrequencyResponse: &Curve{Axis: []float64{1e6, 5e6, 10e6}, Values: []float64{0.5, 1, 0.5}},
			},
			{
				Position:     []float64{0.001, 0, 0},
				Orientation:  []float64{0, 0, 1},
				Geometry:     []float64{0.0005, 0.01, 0.0001},
				GeometryType: tags.GeometryCuboid,
			},
		},
	}
}
