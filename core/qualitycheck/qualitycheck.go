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

// Package qualitycheck validates an acquisition against the tag registry:
// required tags, value types and array arities, paired curve lengths,
// enumerated values and the element counts of the general section. Every
// problem found is reported, nothing is corrected, and the data passed in is
// never modified.
package qualitycheck

import (
	"fmt"
	"strings"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/tags"
)

// Where findings are located, matches the group names in a file
const (
	LocationTimeSeries  = "binary_time_series_data"
	LocationAcquisition = "meta_data_acquisition"
	LocationGeneral     = "meta_data_device/general"
	LocationIlluminator = "meta_data_device/illuminators/"
	LocationDetector    = "meta_data_device/detectors/"
)

type Finding struct {
	Tag      string
	Location string
	Kind     dataerror.Kind
	Problem  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%v: %v [%v]: %v", f.Location, f.Tag, f.Kind, f.Problem)
}

type Report struct {
	Passed   bool
	Findings []Finding
}

func (r Report) String() string {
	if r.Passed {
		return "PASSED"
	}
	lines := []string{fmt.Sprintf("FAILED with %v finding(s)", len(r.Findings))}
	for _, f := range r.Findings {
		lines = append(lines, "  "+f.String())
	}
	return strings.Join(lines, "\n")
}

// CountOf - number of findings of a given kind
func (r Report) CountOf(kind dataerror.Kind) int {
	count := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			count++
		}
	}
	return count
}

func newReport(findings []Finding) Report {
	if findings == nil {
		findings = []Finding{}
	}
	return Report{Passed: len(findings) == 0, Findings: findings}
}

// CheckPAData - runs every check. With verbose set each finding is logged, to
// the console if logFilePath is empty, otherwise to that file (and echoed to
// the console). The only error returned is failure to open the log file
func CheckPAData(data *padata.PAData, verbose bool, logFilePath string) (Report, error) {
	var log logger.ILogger = &logger.NullLogger{}

	if verbose {
		console := &logger.StdOutLogger{}
		console.SetLogLevel(logger.LogDebug)
		log = console

		if len(logFilePath) > 0 {
			fileLog, err := logger.NewFileLogger(logFilePath, logger.LogDebug)
			if err != nil {
				return Report{}, dataerror.MakeWriteFailedError(fmt.Errorf("failed to open check log %v: %v", logFilePath, err))
			}
			defer fileLog.Close()
			fileLog.Echo = console
			log = fileLog
		}
	}

	return CheckPADataWithLogger(data, log), nil
}

// CheckPADataWithLogger - CheckPAData, logging each finding to the given logger
func CheckPADataWithLogger(data *padata.PAData, log logger.ILogger) Report {
	findings := []Finding{}

	if data.BinaryTimeSeriesData == nil {
		findings = append(findings, Finding{Tag: LocationTimeSeries, Location: LocationTimeSeries, Kind: dataerror.KindMissingRequiredField, Problem: "no time series data"})
	} else if err := data.BinaryTimeSeriesData.Validate(); err != nil {
		findings = append(findings, Finding{Tag: LocationTimeSeries, Location: LocationTimeSeries, Kind: dataerror.KindInconsistentValue, Problem: err.Error()})
	}

	findings = append(findings, checkDevice(data.MetaDataDevice)...)
	findings = append(findings, checkAcquisition(data.MetaDataAcquisition)...)
	findings = append(findings, checkSizes(data)...)

	report := newReport(findings)
	logReport(report, log)
	return report
}

// CheckDeviceMetaData - only the device description
func CheckDeviceMetaData(dev device.DeviceMetaData) Report {
	return newReport(checkDevice(dev))
}

// CheckAcquisitionMetaData - only the acquisition parameters
func CheckAcquisitionMetaData(acquisition metadata.Fields) Report {
	return newReport(checkAcquisition(acquisition))
}

func logReport(report Report, log logger.ILogger) {
	for _, f := range report.Findings {
		log.Errorf("%v", f.String())
	}
	if report.Passed {
		log.Infof("Quality check passed")
	} else {
		log.Infof("Quality check failed with %v finding(s)", len(report.Findings))
	}
}

func checkDevice(dev device.DeviceMetaData) []Finding {
	findings := checkSection(dev.General, tags.ScopeGeneral, LocationGeneral)

	for _, e := range dev.Illuminators {
		findings = append(findings, checkSection(e.Fields, tags.ScopeIlluminator, LocationIlluminator+e.Key())...)
	}
	for _, e := range dev.Detectors {
		findings = append(findings, checkSection(e.Fields, tags.ScopeDetector, LocationDetector+e.Key())...)
	}

	findings = append(findings, checkCount(dev.General, tags.NumberOfIlluminators, len(dev.Illuminators))...)
	findings = append(findings, checkCount(dev.General, tags.NumberOfDetectors, len(dev.Detectors))...)
	return findings
}

func checkAcquisition(acquisition metadata.Fields) []Finding {
	return checkSection(acquisition, tags.ScopeAcquisition, LocationAcquisition)
}

// checkSection - required tags of the scope, then every registered tag present
func checkSection(fields metadata.Fields, scope tags.Scope, location string) []Finding {
	findings := []Finding{}

	for _, id := range tags.RequiredForScope(scope) {
		if !fields.Has(id) {
			findings = append(findings, Finding{
				Tag:      string(id),
				Location: location,
				Kind:     dataerror.KindMissingRequiredField,
				Problem:  "required tag missing",
			})
		}
	}

	for _, id := range fields.IDs() {
		tag := tags.MustLookup(id)
		value, _ := fields.Get(id)
		if problem, kind := checkValue(tag, value); len(problem) > 0 {
			findings = append(findings, Finding{Tag: string(id), Location: location, Kind: kind, Problem: problem})
		}
	}

	return findings
}

// checkValue - returns an empty string if the value suits the tag
func checkValue(tag tags.Tag, value metadata.Value) (string, dataerror.Kind) {
	switch tag.Type {
	case tags.TypeNumber:
		if !value.IsNumber() {
			return typeProblem(tag, value), dataerror.KindTypeMismatch
		}

	case tags.TypeString:
		if value.DataType != metadata.TypeString {
			return typeProblem(tag, value), dataerror.KindTypeMismatch
		}

	case tags.TypeEnumString:
		if value.DataType != metadata.TypeString {
			return typeProblem(tag, value), dataerror.KindTypeMismatch
		}
		if !tag.IsAllowed(value.SValue) {
			return fmt.Sprintf("%q is not one of %v", value.SValue, strings.Join(tag.Allowed(), ", ")), dataerror.KindInvalidArgument
		}

	case tags.TypeStringArray:
		if value.DataType != metadata.TypeStringArray {
			return typeProblem(tag, value), dataerror.KindTypeMismatch
		}

	case tags.TypeMapping:
		if value.DataType != metadata.TypeMap {
			return typeProblem(tag, value), dataerror.KindTypeMismatch
		}

	case tags.TypeNumberArray:
		if tag.Paired {
			if value.DataType != metadata.TypePairedArray {
				return fmt.Sprintf("expected paired array, got %v", value.DataType), dataerror.KindTypeMismatch
			}
			return checkPaired(value)
		}

		if !value.IsNumberArray() || value.DataType == metadata.TypePairedArray {
			return typeProblem(tag, value), dataerror.KindTypeMismatch
		}
		if tag.Arity > 0 && value.Len() != tag.Arity {
			return fmt.Sprintf("expected %v values, got %v", tag.Arity, value.Len()), dataerror.KindTypeMismatch
		}
	}

	return "", dataerror.KindUnknown
}

func checkPaired(value metadata.Value) (string, dataerror.Kind) {
	if len(value.Rows) != 2 {
		return fmt.Sprintf("expected 2 rows, got %v", len(value.Rows)), dataerror.KindTypeMismatch
	}
	if len(value.Rows[0]) != len(value.Rows[1]) {
		return fmt.Sprintf("paired arrays differ in length: %v vs %v", len(value.Rows[0]), len(value.Rows[1])), dataerror.KindInconsistentValue
	}
	return "", dataerror.KindUnknown
}

func typeProblem(tag tags.Tag, value metadata.Value) string {
	return fmt.Sprintf("expected %v, got %v", tag.Type, value.DataType)
}

// checkCount - general section counts must match the element lists. A
// missing or mistyped count was already reported by the section check
func checkCount(general metadata.Fields, id tags.ID, actual int) []Finding {
	v, ok := general.Get(id)
	if !ok {
		return nil
	}
	n, ok := v.AsFloat()
	if !ok {
		return nil
	}
	// Fractional counts can never match
	if n != float64(actual) {
		return []Finding{{
			Tag:      string(id),
			Location: LocationGeneral,
			Kind:     dataerror.KindInconsistentValue,
			Problem:  fmt.Sprintf("says %v, device has %v", n, actual),
		}}
	}
	return nil
}

// checkSizes - the sizes tag, when numeric, must describe the time series shape
func checkSizes(data *padata.PAData) []Finding {
	if data.BinaryTimeSeriesData == nil {
		return nil
	}
	v, ok := data.MetaDataAcquisition.Get(tags.Sizes)
	if !ok {
		return nil
	}
	sizes, ok := v.AsFloats()
	if !ok {
		return nil
	}

	shape := data.BinaryTimeSeriesData.Shape
	matches := len(sizes) == len(shape)
	for c := 0; matches && c < len(shape); c++ {
		matches = sizes[c] == float64(shape[c])
	}
	if matches {
		return nil
	}

	return []Finding{{
		Tag:      string(tags.Sizes),
		Location: LocationAcquisition,
		Kind:     dataerror.KindInconsistentValue,
		Problem:  fmt.Sprintf("sizes %v do not match time series shape %v", sizes, shape),
	}}
}
