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

// Package iohandler reads and writes acquisitions as a single BSON document.
//
// The root document holds two attributes (@format_version, @created_unix_sec),
// the time series dataset, the acquisition metadata group and the device
// group, which in turn holds general, illuminators and detectors. Elements are
// keyed by their zero padded ID. Any other key found at the root, in the device
// group or inside a section is kept and written back unchanged.
//
// Scalars map to BSON int64, double and string. Arrays are stored as dataset
// documents carrying @class, @dtype, @shape and @data, where numeric data is
// packed little-endian into a binary field. A document without @class is a
// group, and keys starting with @ are reserved for these attributes.
package iohandler

import "github.com/ipasc/pacfish/core/semanticversion"

// FormatVersion - layout version written to new files. Files with a newer major version can't be read
const FormatVersion = "1.0.0"

var formatVersion = func() semanticversion.SemanticVersion {
	v, err := semanticversion.SemanticVersionFromString(FormatVersion)
	if err != nil {
		panic(err)
	}
	return v
}()

const (
	attrFormatVersion = "@format_version"
	attrCreated       = "@created_unix_sec"

	keyTimeSeries  = "binary_time_series_data"
	keyAcquisition = "meta_data_acquisition"
	keyDevice      = "meta_data_device"

	keyGeneral      = "general"
	keyIlluminators = "illuminators"
	keyDetectors    = "detectors"

	attrClass = "@class"
	attrDType = "@dtype"
	attrShape = "@shape"
	attrData  = "@data"

	classArray   = "array"
	classNDArray = "ndarray"
	classPaired  = "paired"

	dtypeString = "string"

	reservedPrefix = "@"
)

// FileExtension - what the tools name files written by this package
const FileExtension = ".ipasc"
