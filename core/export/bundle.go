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

package export

import (
	"bytes"
	"math"
	"time"

	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/devicedef"
	"github.com/ipasc/pacfish/core/iohandler"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/tags"
	"github.com/ipasc/pacfish/core/utils"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// File names inside the export zip, besides the FITS and container files
const (
	ExportDeviceFileName   = "device.yaml"
	ExportMetadataFileName = "metadata.json"
)

// MetadataJSON - everything except the sample values, as indented JSON. Arrays
// of the ndarray class are summarised by dtype and shape. NaN and infinities
// are written as the strings "NaN", "Infinity" and "-Infinity"
func MetadataJSON(data *padata.PAData) ([]byte, error) {
	doc := map[string]interface{}{
		"format_version":        iohandler.FormatVersion,
		"registry_version":      tags.RegistryVersion,
		"meta_data_acquisition": fieldsToJSON(data.MetaDataAcquisition),
		"meta_data_device":      deviceToJSON(data.MetaDataDevice),
	}
	if arr := data.GetTimeSeriesData(); arr != nil {
		doc["binary_time_series_data"] = ndarrayToJSON(arr)
	}
	if len(data.Extensions) > 0 {
		doc["extensions"] = mapToJSON(data.Extensions)
	}

	s, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert metadata")
	}

	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}

func deviceToJSON(dev device.DeviceMetaData) map[string]interface{} {
	result := map[string]interface{}{
		"general":      fieldsToJSON(dev.General),
		"illuminators": elementsToJSON(dev.Illuminators),
		"detectors":    elementsToJSON(dev.Detectors),
	}
	for k, v := range dev.Extensions {
		result[k] = valueToJSON(v)
	}
	return result
}

func elementsToJSON(elements []device.Element) map[string]interface{} {
	result := map[string]interface{}{}
	for _, elem := range elements {
		result[elem.Key()] = fieldsToJSON(elem.Fields)
	}
	return result
}

func fieldsToJSON(fields metadata.Fields) map[string]interface{} {
	result := map[string]interface{}{}
	for _, key := range fields.Keys() {
		v, _ := fields.Lookup(key)
		result[key] = valueToJSON(v)
	}
	return result
}

func mapToJSON(m metadata.Map) map[string]interface{} {
	result := map[string]interface{}{}
	for k, v := range m {
		result[k] = valueToJSON(v)
	}
	return result
}

func ndarrayToJSON(arr *metadata.NDArray) map[string]interface{} {
	shape := []interface{}{}
	for _, n := range arr.Shape {
		shape = append(shape, n)
	}
	return map[string]interface{}{"dtype": string(arr.DType), "shape": shape}
}

func valueToJSON(v metadata.Value) interface{} {
	switch v.DataType {
	case metadata.TypeInt:
		return v.IValue
	case metadata.TypeFloat:
		return floatToJSON(v.FValue)
	case metadata.TypeString:
		return v.SValue
	case metadata.TypeIntArray:
		result := []interface{}{}
		for _, i := range v.IArray {
			result = append(result, i)
		}
		return result
	case metadata.TypeFloatArray:
		return floatsToJSON(v.FArray)
	case metadata.TypeStringArray:
		result := []interface{}{}
		for _, s := range v.SArray {
			result = append(result, s)
		}
		return result
	case metadata.TypePairedArray:
		result := []interface{}{}
		for _, row := range v.Rows {
			result = append(result, floatsToJSON(row))
		}
		return result
	case metadata.TypeNDArray:
		return ndarrayToJSON(v.Array)
	case metadata.TypeMap:
		return mapToJSON(v.Map)
	}
	return nil
}

func floatsToJSON(values []float64) []interface{} {
	result := []interface{}{}
	for _, f := range values {
		result = append(result, floatToJSON(f))
	}
	return result
}

func floatToJSON(f float64) interface{} {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

// MakeExportZip - a zip holding the container itself, the time series as
// FITS, the device definition YAML, the metadata JSON and a per frame CSV
func MakeExportZip(data *padata.PAData, created time.Time) ([]byte, error) {
	name := iohandler.DefaultFileName(data)
	baseName := name[:len(name)-len(iohandler.FileExtension)]

	container, err := iohandler.EncodePAData(data, created.Unix())
	if err != nil {
		return nil, err
	}

	var fitsBuf bytes.Buffer
	if err := WriteTimeSeriesFITS(&fitsBuf, data); err != nil {
		return nil, errors.Wrap(err, "failed to write FITS")
	}

	var deviceBuf bytes.Buffer
	if err := devicedef.WriteDeviceDefinition(&deviceBuf, devicedef.DefinitionFromDevice(data.MetaDataDevice)); err != nil {
		return nil, errors.Wrap(err, "failed to write device definition")
	}

	metaJSON, err := MetadataJSON(data)
	if err != nil {
		return nil, err
	}

	var csvBuf bytes.Buffer
	if err := writeMeasurementsCSV(&csvBuf, data); err != nil {
		return nil, errors.Wrap(err, "failed to write measurements")
	}

	return utils.MakeZip([]utils.ZipEntry{
		{Name: name, Data: container},
		{Name: baseName + ".fits", Data: fitsBuf.Bytes()},
		{Name: ExportDeviceFileName, Data: deviceBuf.Bytes()},
		{Name: ExportMetadataFileName, Data: metaJSON},
		{Name: ExportMeasurementsFileName, Data: csvBuf.Bytes()},
	}, created)
}
