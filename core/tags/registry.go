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

import "sort"

// Section names used as group keys of the device description
const (
	General      ID = "general"
	Illuminators ID = "illuminators"
	Detectors    ID = "detectors"
)

// General device information
const (
	UniqueIdentifier     ID = "unique_identifier"
	FieldOfView          ID = "field_of_view"
	NumberOfIlluminators ID = "number_of_illuminators"
	NumberOfDetectors    ID = "number_of_detectors"
)

// Illumination element
const (
	IlluminatorPosition     ID = "illuminator_position"
	IlluminatorOrientation  ID = "illuminator_orientation"
	IlluminatorGeometry     ID = "illuminator_geometry"
	IlluminatorGeometryType ID = "illuminator_geometry_type"
	WavelengthRange         ID = "wavelength_range"
	BeamEnergyProfile       ID = "beam_energy_profile"
	BeamStabilityProfile    ID = "beam_stability_profile"
	PulseWidth              ID = "pulse_width"
	BeamIntensityProfile    ID = "beam_intensity_profile"
	BeamDivergenceAngles    ID = "beam_divergence_angles"
)

// Detection element
const (
	DetectorPosition     ID = "detector_position"
	DetectorOrientation  ID = "detector_orientation"
	DetectorGeometry     ID = "detector_geometry"
	DetectorGeometryType ID = "detector_geometry_type"
	FrequencyResponse    ID = "frequency_response"
	AngularResponse      ID = "angular_response"
)

// Acquisition metadata
const (
	UUID                                ID = "uuid"
	Encoding                            ID = "encoding"
	Compression                         ID = "compression"
	DataType                            ID = "data_type"
	Dimensionality                      ID = "dimensionality"
	Sizes                               ID = "sizes"
	PhotoacousticImagingDeviceReference ID = "photoacoustic_imaging_device_reference"
	ADSamplingRate                      ID = "ad_sampling_rate"
	AcquisitionWavelengths              ID = "acquisition_wavelengths"
	PulseEnergy                         ID = "pulse_energy"
	MeasurementTimestamps               ID = "measurement_timestamps"
	TimeGainCompensation                ID = "time_gain_compensation"
	OverallGain                         ID = "overall_gain"
	ElementDependentGain                ID = "element_dependent_gain"
	TemperatureControl                  ID = "temperature_control"
	AcousticCouplingAgent               ID = "acoustic_coupling_agent"
	ScanningMethod                      ID = "scanning_method"
	FrequencyDomainFilter               ID = "frequency_domain_filter"
	SpeedOfSound                        ID = "speed_of_sound"
	RegionsOfInterest                   ID = "regions_of_interest"
)

// Geometry types shared by illuminators and detectors
const (
	GeometryCircular = "CIRCULAR"
	GeometrySphere   = "SPHERE"
	GeometryCuboid   = "CUBOID"
	GeometryMesh     = "MESH"
)

var geometryTypes = []string{GeometryCircular, GeometrySphere, GeometryCuboid, GeometryMesh}

// Dimensionality values
const (
	DimensionalityTime         = "time"
	DimensionalitySpace        = "space"
	DimensionalityTimeAndSpace = "time and space"
)

var dimensionalities = []string{DimensionalityTime, DimensionalitySpace, DimensionalityTimeAndSpace}

// The vocabulary. Not exported, only reachable through the lookups below, and never modified
var registry = [...]Tag{
	{ID: UniqueIdentifier, Name: "Unique identifier", Type: TypeString, Unit: UnitNone, Required: true, Scope: ScopeGeneral},
	{ID: FieldOfView, Name: "Field of view", Type: TypeNumberArray, Unit: UnitMeter, Required: true, Scope: ScopeGeneral, Arity: 3},
	{ID: NumberOfIlluminators, Name: "Number of illumination elements", Type: TypeNumber, Unit: UnitNone, Required: true, Scope: ScopeGeneral},
	{ID: NumberOfDetectors, Name: "Number of detection elements", Type: TypeNumber, Unit: UnitNone, Required: true, Scope: ScopeGeneral},

	{ID: IlluminatorPosition, Name: "Illuminator position", Type: TypeNumberArray, Unit: UnitMeter, Required: true, Scope: ScopeIlluminator, Arity: 3},
	{ID: IlluminatorOrientation, Name: "Illuminator orientation", Type: TypeNumberArray, Unit: UnitRadian, Required: true, Scope: ScopeIlluminator, Arity: 3},
	{ID: IlluminatorGeometry, Name: "Illuminator geometry", Type: TypeNumberArray, Unit: UnitMeter, Required: true, Scope: ScopeIlluminator, Arity: 3},
	{ID: IlluminatorGeometryType, Name: "Illuminator geometry type", Type: TypeEnumString, Unit: UnitNone, Required: true, Scope: ScopeIlluminator, allowed: geometryTypes},
	{ID: WavelengthRange, Name: "Wavelength range", Type: TypeNumberArray, Unit: UnitMeter, Required: true, Scope: ScopeIlluminator, Arity: 3},
	{ID: BeamEnergyProfile, Name: "Beam energy profile", Type: TypeNumberArray, Unit: UnitMeterAndJoule, Scope: ScopeIlluminator, Paired: true},
	{ID: BeamStabilityProfile, Name: "Beam stability profile", Type: TypeNumberArray, Unit: UnitMeterAndJoule, Scope: ScopeIlluminator, Paired: true},
	{ID: PulseWidth, Name: "Pulse width", Type: TypeNumber, Unit: UnitSecond, Scope: ScopeIlluminator},
	{ID: BeamIntensityProfile, Name: "Beam intensity profile", Type: TypeNumberArray, Unit: UnitMeterAndWatt, Scope: ScopeIlluminator, Paired: true},
	{ID: BeamDivergenceAngles, Name: "Beam divergence angles", Type: TypeNumber, Unit: UnitRadian, Scope: ScopeIlluminator},

	{ID: DetectorPosition, Name: "Detector position", Type: TypeNumberArray, Unit: UnitMeter, Required: true, Scope: ScopeDetector, Arity: 3},
	{ID: DetectorOrientation, Name: "Detector orientation", Type: TypeNumberArray, Unit: UnitRadian, Required: true, Scope: ScopeDetector, Arity: 3},
	{ID: DetectorGeometry, Name: "Detector geometry", Type: TypeNumberArray, Unit: UnitMeter, Required: true, Scope: ScopeDetector, Arity: 3},
	{ID: DetectorGeometryType, Name: "Detector geometry type", Type: TypeEnumString, Unit: UnitNone, Required: true, Scope: ScopeDetector, allowed: geometryTypes},
	{ID: FrequencyResponse, Name: "Frequency response", Type: TypeNumberArray, Unit: UnitHertzAndNone, Scope: ScopeDetector, Paired: true},
	{ID: AngularResponse, Name: "Angular response", Type: TypeNumberArray, Unit: UnitRadianAndNone, Scope: ScopeDetector, Paired: true},

	{ID: UUID, Name: "Acquisition UUID", Type: TypeString, Unit: UnitNone, Required: true, Scope: ScopeAcquisition},
	{ID: Encoding, Name: "Encoding", Type: TypeString, Unit: UnitNone, Required: true, Scope: ScopeAcquisition},
	{ID: Compression, Name: "Compression", Type: TypeString, Unit: UnitNone, Required: true, Scope: ScopeAcquisition},
	{ID: DataType, Name: "Data type", Type: TypeString, Unit: UnitNone, Required: true, Scope: ScopeAcquisition},
	{ID: Dimensionality, Name: "Dimensionality", Type: TypeEnumString, Unit: UnitNone, Required: true, Scope: ScopeAcquisition, allowed: dimensionalities},
	{ID: Sizes, Name: "Sizes", Type: TypeNumberArray, Unit: UnitNone, Required: true, Scope: ScopeAcquisition},
	{ID: PhotoacousticImagingDeviceReference, Name: "Photoacoustic imaging device reference", Type: TypeString, Unit: UnitNone, Required: true, Scope: ScopeAcquisition},
	{ID: ADSamplingRate, Name: "A/D sampling rate", Type: TypeNumber, Unit: UnitHertz, Required: true, Scope: ScopeAcquisition},
	{ID: AcquisitionWavelengths, Name: "Acquisition wavelengths", Type: TypeNumberArray, Unit: UnitMeter, Required: true, Scope: ScopeAcquisition},
	{ID: PulseEnergy, Name: "Pulse energy", Type: TypeNumberArray, Unit: UnitJoule, Scope: ScopeAcquisition},
	{ID: MeasurementTimestamps, Name: "Measurement timestamps", Type: TypeNumberArray, Unit: UnitSecond, Scope: ScopeAcquisition},
	{ID: TimeGainCompensation, Name: "Time gain compensation", Type: TypeNumberArray, Unit: UnitNone, Scope: ScopeAcquisition},
	{ID: OverallGain, Name: "Overall gain", Type: TypeNumber, Unit: UnitNone, Scope: ScopeAcquisition},
	{ID: ElementDependentGain, Name: "Element dependent gain", Type: TypeNumberArray, Unit: UnitNone, Scope: ScopeAcquisition},
	{ID: TemperatureControl, Name: "Temperature control", Type: TypeNumberArray, Unit: UnitKelvin, Scope: ScopeAcquisition},
	{ID: AcousticCouplingAgent, Name: "Acoustic coupling agent", Type: TypeString, Unit: UnitNone, Scope: ScopeAcquisition},
	{ID: ScanningMethod, Name: "Scanning method", Type: TypeString, Unit: UnitNone, Scope: ScopeAcquisition},
	{ID: FrequencyDomainFilter, Name: "Frequency domain filter", Type: TypeNumberArray, Unit: UnitHertz, Scope: ScopeAcquisition},
	{ID: SpeedOfSound, Name: "Speed of sound", Type: TypeNumber, Unit: UnitMeterPerSec, Scope: ScopeAcquisition},
	{ID: RegionsOfInterest, Name: "Regions of interest", Type: TypeMapping, Unit: UnitNone, Scope: ScopeAcquisition},
}

var registryIndex = func() map[ID]int {
	result := make(map[ID]int, len(registry))
	for c, t := range registry {
		result[t.ID] = c
	}
	return result
}()

// Lookup - finds a tag by identifier
func Lookup(id ID) (Tag, bool) {
	idx, ok := registryIndex[id]
	if !ok {
		return Tag{}, false
	}
	return registry[idx], true
}

// MustLookup - for identifiers declared in this package. Panics on unknown ones
func MustLookup(id ID) Tag {
	t, ok := Lookup(id)
	if !ok {
		panic("tags: unknown tag " + string(id))
	}
	return t
}

func IsKnown(key string) bool {
	_, ok := registryIndex[ID(key)]
	return ok
}

// All - every tag, in declaration order
func All() []Tag {
	result := make([]Tag, len(registry))
	copy(result, registry[:])
	return result
}

// ForScope - tags of a section, in declaration order
func ForScope(scope Scope) []Tag {
	result := []Tag{}
	for _, t := range registry {
		if t.Scope == scope {
			result = append(result, t)
		}
	}
	return result
}

// RequiredForScope - identifiers that must be present in a section, sorted
func RequiredForScope(scope Scope) []ID {
	result := []ID{}
	for _, t := range registry {
		if t.Scope == scope && t.Required {
			result = append(result, t.ID)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func GeometryTypes() []string {
	result := make([]string, len(geometryTypes))
	copy(result, geometryTypes)
	return result
}

func IsValidGeometryType(geometryType string) bool {
	for _, g := range geometryTypes {
		if g == geometryType {
			return true
		}
	}
	return false
}
