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
	"strings"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// encodePAData - builds the whole file in memory. Nothing is written anywhere
// until this has succeeded
func encodePAData(data *padata.PAData, createdUnixSec int64) ([]byte, error) {
	if data == nil {
		return nil, dataerror.MakeUnsupportedTypeError(fmt.Errorf("no data to write"))
	}
	if data.BinaryTimeSeriesData == nil {
		return nil, dataerror.MakeUnsupportedTypeError(fmt.Errorf("%v: no time series data", keyTimeSeries))
	}

	timeSeries, err := encodeNDArray(data.BinaryTimeSeriesData)
	if err != nil {
		return nil, wrapUnsupported(err, keyTimeSeries)
	}

	acquisition, err := encodeFields(data.MetaDataAcquisition)
	if err != nil {
		return nil, wrapUnsupported(err, keyAcquisition)
	}

	dev, err := encodeDevice(data.MetaDataDevice)
	if err != nil {
		return nil, wrapUnsupported(err, keyDevice)
	}

	doc := bson.D{
		{Key: attrFormatVersion, Value: FormatVersion},
		{Key: attrCreated, Value: createdUnixSec},
		{Key: keyTimeSeries, Value: timeSeries},
		{Key: keyAcquisition, Value: acquisition},
		{Key: keyDevice, Value: dev},
	}

	for _, key := range utils.GetSortedMapKeys(data.Extensions) {
		if key == keyTimeSeries || key == keyAcquisition || key == keyDevice {
			return nil, dataerror.MakeUnsupportedTypeError(fmt.Errorf("extension key %v clashes with a top level group", key))
		}
		v, err := encodeEntry(key, data.Extensions[key])
		if err != nil {
			return nil, wrapUnsupported(err, "")
		}
		doc = append(doc, v)
	}

	bytes, err := bson.Marshal(doc)
	if err != nil {
		return nil, dataerror.MakeUnsupportedTypeError(errors.Wrap(err, "failed to encode document"))
	}
	return bytes, nil
}

func wrapUnsupported(err error, location string) error {
	if len(location) > 0 {
		err = errors.Wrap(err, location)
	}
	if dataerror.KindOf(err) != dataerror.KindUnknown {
		return err
	}
	return dataerror.MakeUnsupportedTypeError(err)
}

func encodeDevice(dev device.DeviceMetaData) (bson.D, error) {
	general, err := encodeFields(dev.General)
	if err != nil {
		return nil, errors.Wrap(err, keyGeneral)
	}

	illuminators, err := encodeElements(dev.Illuminators)
	if err != nil {
		return nil, errors.Wrap(err, keyIlluminators)
	}

	detectors, err := encodeElements(dev.Detectors)
	if err != nil {
		return nil, errors.Wrap(err, keyDetectors)
	}

	result := bson.D{
		{Key: keyGeneral, Value: general},
		{Key: keyIlluminators, Value: illuminators},
		{Key: keyDetectors, Value: detectors},
	}

	for _, key := range utils.GetSortedMapKeys(dev.Extensions) {
		if key == keyGeneral || key == keyIlluminators || key == keyDetectors {
			return nil, fmt.Errorf("extension key %v clashes with a device group", key)
		}
		e, err := encodeEntry(key, dev.Extensions[key])
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}

	return result, nil
}

func encodeElements(elements []device.Element) (bson.D, error) {
	result := bson.D{}
	seen := map[int]bool{}

	for _, e := range elements {
		if e.ID < 0 {
			return nil, fmt.Errorf("negative element id %v", e.ID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate element id %v", e.ID)
		}
		seen[e.ID] = true

		fields, err := encodeFields(e.Fields)
		if err != nil {
			return nil, errors.Wrap(err, e.Key())
		}
		result = append(result, bson.E{Key: e.Key(), Value: fields})
	}
	return result, nil
}

// encodeFields - a section becomes a group, keys sorted
func encodeFields(fields metadata.Fields) (bson.D, error) {
	result := bson.D{}
	for _, key := range fields.Keys() {
		v, _ := fields.Lookup(key)
		e, err := encodeEntry(key, v)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

func encodeMap(m metadata.Map) (bson.D, error) {
	result := bson.D{}
	for _, key := range m.Keys() {
		e, err := encodeEntry(key, m[key])
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

func encodeEntry(key string, value metadata.Value) (bson.E, error) {
	if err := checkKey(key); err != nil {
		return bson.E{}, err
	}
	v, err := encodeValue(value)
	if err != nil {
		return bson.E{}, errors.Wrap(err, key)
	}
	return bson.E{Key: key, Value: v}, nil
}

func checkKey(key string) error {
	if len(key) == 0 {
		return dataerror.MakeUnsupportedTypeError(fmt.Errorf("empty key"))
	}
	if strings.HasPrefix(key, reservedPrefix) {
		return dataerror.MakeUnsupportedTypeError(fmt.Errorf("key %v uses reserved prefix %v", key, reservedPrefix))
	}
	if strings.ContainsRune(key, 0) {
		return dataerror.MakeUnsupportedTypeError(fmt.Errorf("key %q contains a null character", key))
	}
	return nil
}

func encodeValue(value metadata.Value) (interface{}, error) {
	switch value.DataType {
	case metadata.TypeInt:
		return value.IValue, nil

	case metadata.TypeFloat:
		return value.FValue, nil

	case metadata.TypeString:
		return value.SValue, nil

	case metadata.TypeIntArray:
		return dataset(classArray, string(metadata.DTypeInt64), []int{len(value.IArray)}, binaryData(packInts(value.IArray))), nil

	case metadata.TypeFloatArray:
		packed, err := packValues(metadata.DTypeFloat64, value.FArray)
		if err != nil {
			return nil, err
		}
		return dataset(classArray, string(metadata.DTypeFloat64), []int{len(value.FArray)}, binaryData(packed)), nil

	case metadata.TypeStringArray:
		strs := bson.A{}
		for _, s := range value.SArray {
			strs = append(strs, s)
		}
		return dataset(classArray, dtypeString, []int{len(value.SArray)}, strs), nil

	case metadata.TypePairedArray:
		rows := bson.A{}
		for _, row := range value.Rows {
			r := bson.A{}
			for _, v := range row {
				r = append(r, v)
			}
			rows = append(rows, r)
		}
		return dataset(classPaired, string(metadata.DTypeFloat64), []int{len(value.Rows)}, rows), nil

	case metadata.TypeNDArray:
		return encodeNDArray(value.Array)

	case metadata.TypeMap:
		return encodeMap(value.Map)
	}

	return nil, dataerror.MakeUnsupportedTypeError(fmt.Errorf("unsupported value type: %v", value.DataType))
}

func encodeNDArray(arr *metadata.NDArray) (bson.D, error) {
	if arr == nil {
		return nil, dataerror.MakeUnsupportedTypeError(fmt.Errorf("nil ndarray"))
	}
	if err := arr.Validate(); err != nil {
		return nil, dataerror.MakeUnsupportedTypeError(err)
	}

	packed, err := packValues(arr.DType, arr.Data)
	if err != nil {
		return nil, dataerror.MakeUnsupportedTypeError(err)
	}
	return dataset(classNDArray, string(arr.DType), arr.Shape, binaryData(packed)), nil
}

func dataset(class string, dtype string, shape []int, data interface{}) bson.D {
	s := bson.A{}
	for _, n := range shape {
		s = append(s, int64(n))
	}
	return bson.D{
		{Key: attrClass, Value: class},
		{Key: attrDType, Value: dtype},
		{Key: attrShape, Value: s},
		{Key: attrData, Value: data},
	}
}

func binaryData(b []byte) primitive.Binary {
	return primitive.Binary{Subtype: 0x00, Data: b}
}
