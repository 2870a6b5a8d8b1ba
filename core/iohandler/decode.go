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

package iohandler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/semanticversion"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func corrupt(format string, a ...interface{}) error {
	return dataerror.MakeCorruptStructureError(fmt.Errorf(format, a...))
}

// wrapCorrupt - adds location context, keeping the kind (or making it CorruptStructure)
func wrapCorrupt(err error, location string) error {
	err = errors.Wrap(err, location)
	if dataerror.KindOf(err) != dataerror.KindUnknown {
		return err
	}
	return dataerror.MakeCorruptStructureError(err)
}

// parseRoot - validates the BSON and the format version, returning the root document
func parseRoot(data []byte) (bson.Raw, semanticversion.SemanticVersion, int64, error) {
	root := bson.Raw(data)
	if err := root.Validate(); err != nil {
		return nil, semanticversion.SemanticVersion{}, 0, corrupt("not a valid container: %v", err)
	}

	versionStr, ok := root.Lookup(attrFormatVersion).StringValueOK()
	if !ok {
		return nil, semanticversion.SemanticVersion{}, 0, corrupt("missing %v", attrFormatVersion)
	}
	version, err := semanticversion.SemanticVersionFromString(versionStr)
	if err != nil {
		return nil, version, 0, corrupt("bad %v: %v", attrFormatVersion, err)
	}
	if !formatVersion.CanRead(version) {
		return nil, version, 0, corrupt("format version %v is newer than supported version %v", version, formatVersion)
	}

	created, _ := intValue(root.Lookup(attrCreated))
	return root, version, created, nil
}

func decodePAData(data []byte) (*padata.PAData, error) {
	root, _, _, err := parseRoot(data)
	if err != nil {
		return nil, err
	}

	elements, err := root.Elements()
	if err != nil {
		return nil, corrupt("failed to read root elements: %v", err)
	}

	result := &padata.PAData{Extensions: metadata.Map{}}
	found := map[string]bool{}

	for _, elem := range elements {
		key := elem.Key()
		if found[key] {
			return nil, corrupt("duplicate key %v", key)
		}
		found[key] = true

		switch {
		case strings.HasPrefix(key, reservedPrefix):
			// Attributes. Ones added by later minor versions are ignored
			continue

		case key == keyTimeSeries:
			v, err := decodeValue(elem.Value())
			if err != nil {
				return nil, wrapCorrupt(err, key)
			}
			if v.DataType != metadata.TypeNDArray {
				return nil, corrupt("%v is not an ndarray dataset", key)
			}
			result.BinaryTimeSeriesData = v.Array

		case key == keyAcquisition:
			group, ok := elem.Value().DocumentOK()
			if !ok {
				return nil, corrupt("%v is not a group", key)
			}
			fields, err := decodeFields(group)
			if err != nil {
				return nil, wrapCorrupt(err, key)
			}
			result.MetaDataAcquisition = fields

		case key == keyDevice:
			group, ok := elem.Value().DocumentOK()
			if !ok {
				return nil, corrupt("%v is not a group", key)
			}
			dev, err := decodeDevice(group)
			if err != nil {
				return nil, wrapCorrupt(err, key)
			}
			result.MetaDataDevice = dev

		default:
			v, err := decodeValue(elem.Value())
			if err != nil {
				return nil, wrapCorrupt(err, key)
			}
			result.Extensions[key] = v
		}
	}

	for _, key := range []string{keyTimeSeries, keyAcquisition, keyDevice} {
		if !found[key] {
			return nil, corrupt("missing %v", key)
		}
	}

	return result, nil
}

func decodeDevice(group bson.Raw) (device.DeviceMetaData, error) {
	result := device.DeviceMetaData{
		General:      metadata.NewFields(),
		Illuminators: []device.Element{},
		Detectors:    []device.Element{},
		Extensions:   metadata.Map{},
	}

	elements, err := group.Elements()
	if err != nil {
		return result, corrupt("failed to read device group: %v", err)
	}

	found := map[string]bool{}
	for _, elem := range elements {
		key := elem.Key()
		if found[key] {
			return result, corrupt("duplicate key %v", key)
		}
		found[key] = true

		if strings.HasPrefix(key, reservedPrefix) {
			return result, corrupt("unexpected attribute %v in group", key)
		}

		switch key {
		case keyGeneral:
			sub, ok := elem.Value().DocumentOK()
			if !ok {
				return result, corrupt("%v is not a group", key)
			}
			if result.General, err = decodeFields(sub); err != nil {
				return result, wrapCorrupt(err, key)
			}

		case keyIlluminators, keyDetectors:
			sub, ok := elem.Value().DocumentOK()
			if !ok {
				return result, corrupt("%v is not a group", key)
			}
			list, err := decodeElements(sub)
			if err != nil {
				return result, wrapCorrupt(err, key)
			}
			if key == keyIlluminators {
				result.Illuminators = list
			} else {
				result.Detectors = list
			}

		default:
			v, err := decodeValue(elem.Value())
			if err != nil {
				return result, wrapCorrupt(err, key)
			}
			result.Extensions[key] = v
		}
	}

	for _, key := range []string{keyGeneral, keyIlluminators, keyDetectors} {
		if !found[key] {
			return result, corrupt("missing %v", key)
		}
	}

	return result, nil
}

// decodeElements - every entry must be a group keyed by a zero padded ID. Returned in ID order
func decodeElements(group bson.Raw) ([]device.Element, error) {
	elements, err := group.Elements()
	if err != nil {
		return nil, corrupt("failed to read elements: %v", err)
	}

	result := []device.Element{}
	seen := map[int]bool{}

	for _, elem := range elements {
		key := elem.Key()
		if len(key) != device.ElementKeyWidth {
			return nil, corrupt("bad element key: %v", key)
		}
		id, err := device.ParseElementKey(key)
		if err != nil {
			return nil, corrupt("bad element key: %v", key)
		}
		if seen[id] {
			return nil, corrupt("duplicate element key: %v", key)
		}
		seen[id] = true

		sub, ok := elem.Value().DocumentOK()
		if !ok || isDataset(sub) {
			return nil, corrupt("element %v is not a group", key)
		}
		fields, err := decodeFields(sub)
		if err != nil {
			return nil, wrapCorrupt(err, key)
		}
		result = append(result, device.Element{ID: id, Fields: fields})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func decodeFields(group bson.Raw) (metadata.Fields, error) {
	result := metadata.NewFields()

	m, err := decodeGroup(group)
	if err != nil {
		return result, err
	}
	for key, v := range m {
		result.SetRaw(key, v)
	}
	return result, nil
}

func decodeGroup(group bson.Raw) (metadata.Map, error) {
	elements, err := group.Elements()
	if err != nil {
		return nil, corrupt("failed to read group: %v", err)
	}

	result := metadata.Map{}
	for _, elem := range elements {
		key := elem.Key()
		if strings.HasPrefix(key, reservedPrefix) {
			return nil, corrupt("unexpected attribute %v in group", key)
		}
		if _, exists := result[key]; exists {
			return nil, corrupt("duplicate key %v", key)
		}

		v, err := decodeValue(elem.Value())
		if err != nil {
			return nil, wrapCorrupt(err, key)
		}
		result[key] = v
	}
	return result, nil
}

func isDataset(doc bson.Raw) bool {
	_, err := doc.LookupErr(attrClass)
	return err == nil
}

func decodeValue(raw bson.RawValue) (metadata.Value, error) {
	switch raw.Type {
	case bsontype.Int64, bsontype.Int32:
		i, _ := intValue(raw)
		return metadata.IntValue(i), nil

	case bsontype.Double:
		return metadata.FloatValue(raw.Double()), nil

	case bsontype.String:
		return metadata.StringValue(raw.StringValue()), nil

	case bsontype.EmbeddedDocument:
		doc := raw.Document()
		if isDataset(doc) {
			return decodeDataset(doc)
		}
		m, err := decodeGroup(doc)
		if err != nil {
			return metadata.Value{}, err
		}
		return metadata.Value{DataType: metadata.TypeMap, Map: m}, nil
	}

	return metadata.Value{}, corrupt("unsupported element type: %v", raw.Type)
}

func decodeDataset(doc bson.Raw) (metadata.Value, error) {
	class, ok := doc.Lookup(attrClass).StringValueOK()
	if !ok {
		return metadata.Value{}, corrupt("%v is not a string", attrClass)
	}
	dtype, ok := doc.Lookup(attrDType).StringValueOK()
	if !ok {
		return metadata.Value{}, corrupt("dataset has no %v", attrDType)
	}
	shape, err := decodeShape(doc.Lookup(attrShape))
	if err != nil {
		return metadata.Value{}, err
	}
	data, err := doc.LookupErr(attrData)
	if err != nil {
		return metadata.Value{}, corrupt("dataset has no %v", attrData)
	}

	switch class {
	case classNDArray:
		values, err := binaryValues(data, metadata.DType(dtype), metadata.ShapeSize(shape))
		if err != nil {
			return metadata.Value{}, err
		}
		arr := &metadata.NDArray{DType: metadata.DType(dtype), Shape: shape, Data: values}
		return metadata.Value{DataType: metadata.TypeNDArray, Array: arr}, nil

	case classArray:
		if len(shape) != 1 {
			return metadata.Value{}, corrupt("array dataset must be one dimensional, shape is %v", shape)
		}
		return decodeFlatArray(data, dtype, shape[0])

	case classPaired:
		if len(shape) != 1 {
			return metadata.Value{}, corrupt("paired dataset must have one dimension, shape is %v", shape)
		}
		return decodePaired(data, shape[0])
	}

	return metadata.Value{}, corrupt("unknown dataset class: %v", class)
}

func decodeShape(raw bson.RawValue) ([]int, error) {
	arr, ok := raw.ArrayOK()
	if !ok {
		return nil, corrupt("dataset has no %v", attrShape)
	}
	values, err := arr.Values()
	if err != nil {
		return nil, corrupt("bad %v: %v", attrShape, err)
	}

	shape := []int{}
	for _, v := range values {
		n, ok := intValue(v)
		if !ok || n < 0 {
			return nil, corrupt("bad %v entry: %v", attrShape, v)
		}
		shape = append(shape, int(n))
	}
	return shape, nil
}

func decodeFlatArray(data bson.RawValue, dtype string, count int) (metadata.Value, error) {
	switch dtype {
	case dtypeString:
		arr, ok := data.ArrayOK()
		if !ok {
			return metadata.Value{}, corrupt("string array %v is not an array", attrData)
		}
		values, err := arr.Values()
		if err != nil {
			return metadata.Value{}, corrupt("bad string array: %v", err)
		}
		if len(values) != count {
			return metadata.Value{}, corrupt("string array has %v entries, shape says %v", len(values), count)
		}
		strs := make([]string, 0, count)
		for _, v := range values {
			s, ok := v.StringValueOK()
			if !ok {
				return metadata.Value{}, corrupt("string array holds a %v", v.Type)
			}
			strs = append(strs, s)
		}
		return metadata.Value{DataType: metadata.TypeStringArray, SArray: strs}, nil

	case string(metadata.DTypeInt64):
		_, bytes, ok := data.BinaryOK()
		if !ok {
			return metadata.Value{}, corrupt("array %v is not binary", attrData)
		}
		ints, err := unpackInts(bytes, count)
		if err != nil {
			return metadata.Value{}, corrupt("%v", err)
		}
		return metadata.Value{DataType: metadata.TypeIntArray, IArray: ints}, nil
	}

	values, err := binaryValues(data, metadata.DType(dtype), count)
	if err != nil {
		return metadata.Value{}, err
	}
	return metadata.Value{DataType: metadata.TypeFloatArray, FArray: values}, nil
}

func decodePaired(data bson.RawValue, count int) (metadata.Value, error) {
	arr, ok := data.ArrayOK()
	if !ok {
		return metadata.Value{}, corrupt("paired %v is not an array", attrData)
	}
	rows, err := arr.Values()
	if err != nil {
		return metadata.Value{}, corrupt("bad paired data: %v", err)
	}
	if len(rows) != count {
		return metadata.Value{}, corrupt("paired dataset has %v rows, shape says %v", len(rows), count)
	}

	result := make([][]float64, 0, len(rows))
	for _, row := range rows {
		rowArr, ok := row.ArrayOK()
		if !ok {
			return metadata.Value{}, corrupt("paired row is a %v", row.Type)
		}
		values, err := rowArr.Values()
		if err != nil {
			return metadata.Value{}, corrupt("bad paired row: %v", err)
		}
		floats := make([]float64, 0, len(values))
		for _, v := range values {
			f, ok := floatValue(v)
			if !ok {
				return metadata.Value{}, corrupt("paired row holds a %v", v.Type)
			}
			floats = append(floats, f)
		}
		result = append(result, floats)
	}
	return metadata.Value{DataType: metadata.TypePairedArray, Rows: result}, nil
}

func binaryValues(data bson.RawValue, dtype metadata.DType, count int) ([]float64, error) {
	if !dtype.IsValid() {
		return nil, corrupt("unsupported dtype: %v", dtype)
	}
	_, bytes, ok := data.BinaryOK()
	if !ok {
		return nil, corrupt("dataset %v is not binary", attrData)
	}
	values, err := unpackValues(dtype, bytes, count)
	if err != nil {
		return nil, corrupt("%v", err)
	}
	return values, nil
}

func intValue(raw bson.RawValue) (int64, bool) {
	switch raw.Type {
	case bsontype.Int64:
		return raw.Int64(), true
	case bsontype.Int32:
		return int64(raw.Int32()), true
	}
	return 0, false
}

func floatValue(raw bson.RawValue) (float64, bool) {
	switch raw.Type {
	case bsontype.Double:
		return raw.Double(), true
	case bsontype.Int64, bsontype.Int32:
		i, _ := intValue(raw)
		return float64(i), true
	}
	return 0, false
}
