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

// Package fitsimport reads acquisitions stored as a FITS primary image with
// the metadata in header cards, and the device described in a device.yaml
// next to the FITS file.
package fitsimport

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/google/uuid"
	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/device"
	"github.com/ipasc/pacfish/core/devicedef"
	"github.com/ipasc/pacfish/core/export"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/tags"
	"github.com/ipasc/pacfish/core/utils"
	"github.com/ipasc/pacfish/dataimport/converter"
	"github.com/pkg/errors"
)

var Extensions = []string{".fits", ".fit", ".fts"}

// Header cards not mapped to a tag are kept as acquisition extensions named with this prefix
const ExtensionPrefix = "fits_"

var bitpixDTypes = map[int]metadata.DType{
	8:   metadata.DTypeUInt8,
	16:  metadata.DTypeInt16,
	32:  metadata.DTypeInt32,
	64:  metadata.DTypeInt64,
	-32: metadata.DTypeFloat32,
	-64: metadata.DTypeFloat64,
}

type FITSImport struct {
	fs fileaccess.FileAccess

	// Device definition used when there's no device.yaml next to the FITS file
	defaultDevicePath string
}

func MakeFITSImport(fs fileaccess.FileAccess, defaultDevicePath string) FITSImport {
	return FITSImport{fs: fs, defaultDevicePath: defaultDevicePath}
}

func (f FITSImport) GeneratePAData(importPath string, log logger.ILogger) (*padata.PAData, error) {
	fitsPath, err := converter.ResolveInputFile(f.fs, importPath, Extensions)
	if err != nil {
		return nil, err
	}

	log.Infof("Reading FITS file: %v", fitsPath)
	raw, err := f.fs.ReadObject("", fitsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %v", fitsPath)
	}

	timeSeries, cards, err := readFITS(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %v", fitsPath)
	}
	log.Infof("  Image %v %v, %v header cards", timeSeries.DType, timeSeries.Shape, len(cards))

	dev, err := f.readDevice(filepath.Dir(fitsPath), log)
	if err != nil {
		return nil, err
	}

	acq, err := makeAcquisition(timeSeries, cards, dev, log)
	if err != nil {
		return nil, err
	}

	return padata.NewPAData(timeSeries, acq, dev), nil
}

func (f FITSImport) readDevice(dir string, log logger.ILogger) (device.DeviceMetaData, error) {
	devPath := filepath.Join(dir, devicedef.DefaultFileName)
	raw, err := f.fs.ReadObject("", devPath)
	if err != nil {
		if !f.fs.IsNotFoundError(err) || len(f.defaultDevicePath) == 0 {
			return device.DeviceMetaData{}, errors.Wrapf(err, "failed to read device definition %v", devPath)
		}

		log.Infof("No %v next to FITS file, using %v", devicedef.DefaultFileName, f.defaultDevicePath)
		devPath = f.defaultDevicePath
		raw, err = f.fs.ReadObject("", devPath)
		if err != nil {
			return device.DeviceMetaData{}, errors.Wrapf(err, "failed to read device definition %v", devPath)
		}
	}

	def, err := devicedef.ParseDeviceDefinition(raw)
	if err != nil {
		return device.DeviceMetaData{}, err
	}
	dev, err := def.Build()
	if err != nil {
		return device.DeviceMetaData{}, errors.Wrapf(err, "bad device definition %v", devPath)
	}

	log.Infof("  Device %v from %v", def.UniqueIdentifier, devPath)
	return dev, nil
}

// readFITS - the primary image, converted to the row-major shape used in
// containers, plus all non structural header cards by name
func readFITS(raw []byte) (*metadata.NDArray, map[string]fitsio.Card, error) {
	f, err := fitsio.Open(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, dataerror.MakeCorruptStructureError(err)
	}
	defer f.Close()

	img, ok := f.HDU(0).(fitsio.Image)
	if !ok {
		return nil, nil, dataerror.MakeCorruptStructureError(fmt.Errorf("primary HDU is not an image"))
	}

	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) == 0 {
		return nil, nil, dataerror.MakeCorruptStructureError(fmt.Errorf("primary image has no axes"))
	}

	cards := map[string]fitsio.Card{}
	for _, name := range hdr.Keys() {
		if len(name) == 0 || export.IsStructuralCard(name) {
			continue
		}
		if card := hdr.Get(name); card != nil {
			cards[name] = *card
		}
	}

	dtype, ok := bitpixDTypes[hdr.Bitpix()]
	if !ok {
		return nil, nil, dataerror.MakeUnsupportedTypeError(fmt.Errorf("unsupported BITPIX: %v", hdr.Bitpix()))
	}
	if card, ok := cards[export.CardDType]; ok {
		if s, ok := card.Value.(string); ok && metadata.DType(s).IsValid() {
			dtype = metadata.DType(s)
		}
		delete(cards, export.CardDType)
	}

	shape := utils.ReverseCopy(axes)
	values, err := readPixels(img, hdr.Bitpix(), metadata.ShapeSize(shape))
	if err != nil {
		return nil, nil, dataerror.MakeCorruptStructureError(err)
	}

	arr, err := metadata.NewNDArrayFromData(dtype, shape, values)
	if err != nil {
		return nil, nil, dataerror.MakeCorruptStructureError(err)
	}
	return arr, cards, nil
}

// readPixels - image data as floats. Reads go through a slice of the type
// BITPIX declares, BZERO/BSCALE are not applied
func readPixels(img fitsio.Image, bitpix int, n int) ([]float64, error) {
	switch bitpix {
	case 8:
		v := make([]byte, n)
		err := img.Read(&v)
		return utils.ConvertToFloats(v), err
	case 16:
		v := make([]int16, n)
		err := img.Read(&v)
		return utils.ConvertToFloats(v), err
	case 32:
		v := make([]int32, n)
		err := img.Read(&v)
		return utils.ConvertToFloats(v), err
	case 64:
		v := make([]int64, n)
		err := img.Read(&v)
		return utils.ConvertToFloats(v), err
	case -32:
		v := make([]float32, n)
		err := img.Read(&v)
		return utils.ConvertToFloats(v), err
	case -64:
		v := make([]float64, n)
		err := img.Read(&v)
		return v, err
	}
	return nil, fmt.Errorf("unsupported BITPIX: %v", bitpix)
}

func makeAcquisition(timeSeries *metadata.NDArray, cards map[string]fitsio.Card, dev device.DeviceMetaData, log logger.ILogger) (metadata.Fields, error) {
	acq := metadata.NewFields()
	frames := timeSeries.Shape[0]

	// Cards are removed from this as they're consumed, what's left becomes extensions
	remaining := map[string]fitsio.Card{}
	for k, v := range cards {
		remaining[k] = v
	}
	take := func(name string) (fitsio.Card, bool) {
		card, ok := remaining[name]
		delete(remaining, name)
		return card, ok
	}

	acqUUID := ""
	if card, ok := take(export.CardUUID); ok {
		acqUUID, _ = card.Value.(string)
	}
	if len(acqUUID) == 0 {
		acqUUID = uuid.NewString()
		log.Infof("  No %v card, generated acquisition uuid %v", export.CardUUID, acqUUID)
	}
	acq.Set(tags.UUID, metadata.StringValue(acqUUID))

	acq.Set(tags.Encoding, metadata.StringValue("raw"))
	acq.Set(tags.Compression, metadata.StringValue("none"))
	acq.Set(tags.DataType, metadata.StringValue(string(timeSeries.DType)))

	sizes := []int64{}
	for _, n := range timeSeries.Shape {
		sizes = append(sizes, int64(n))
	}
	acq.Set(tags.Sizes, metadata.IntArrayValue(sizes))

	dimensionality := tags.DimensionalityTime
	if card, ok := take(export.CardDimensionality); ok {
		if s, ok := card.Value.(string); ok {
			dimensionality = s
		}
	}
	if err := acq.Set(tags.Dimensionality, metadata.StringValue(dimensionality)); err != nil {
		return acq, err
	}

	deviceRef, _ := dev.UniqueIdentifier()
	if card, ok := take(export.CardDevice); ok {
		if s, ok := card.Value.(string); ok && len(s) > 0 {
			deviceRef = s
		}
	}
	acq.Set(tags.PhotoacousticImagingDeviceReference, metadata.StringValue(deviceRef))

	numbers := []struct {
		card string
		id   tags.ID
	}{
		{export.CardADRate, tags.ADSamplingRate},
		{export.CardSpeedOfSound, tags.SpeedOfSound},
		{export.CardGain, tags.OverallGain},
	}
	for _, n := range numbers {
		if card, ok := take(n.card); ok {
			if f, ok := cardFloat(card); ok {
				acq.Set(n.id, metadata.FloatValue(f))
			} else {
				log.Errorf("  Ignoring non numeric %v card: %v", n.card, card.Value)
			}
		}
	}

	strs := []struct {
		card string
		id   tags.ID
	}{
		{export.CardCoupling, tags.AcousticCouplingAgent},
		{export.CardScanMethod, tags.ScanningMethod},
	}
	for _, s := range strs {
		if card, ok := take(s.card); ok {
			acq.Set(s.id, metadata.StringValue(fmt.Sprintf("%v", card.Value)))
		}
	}

	wavelengths := []float64{}
	if card, ok := take(export.CardWavelength); ok {
		if f, ok := cardFloat(card); ok {
			wavelengths = append(wavelengths, f)
		}
	}
	for c := 1; c <= export.MaxWavelengthCards; c++ {
		card, ok := take(export.WavelengthCard(c))
		if !ok {
			break
		}
		if f, ok := cardFloat(card); ok {
			wavelengths = append(wavelengths, f)
		}
	}
	if len(wavelengths) > 0 {
		acq.Set(tags.AcquisitionWavelengths, metadata.FloatArrayValue(wavelengths))
	} else {
		log.Errorf("  No wavelength cards found")
	}

	if card, ok := take(export.CardPulseEnergy); ok {
		if f, ok := cardFloat(card); ok {
			energies := make([]float64, frames)
			for c := range energies {
				energies[c] = f
			}
			acq.Set(tags.PulseEnergy, metadata.FloatArrayValue(energies))
		}
	}

	if card, ok := take(export.CardTimeStart); ok {
		start, _ := cardFloat(card)
		step := 0.0
		if card, ok := take(export.CardTimeStep); ok {
			step, _ = cardFloat(card)
		}
		if frames == 1 || step != 0 {
			stamps := make([]float64, frames)
			for c := range stamps {
				stamps[c] = start + float64(c)*step
			}
			acq.Set(tags.MeasurementTimestamps, metadata.FloatArrayValue(stamps))
		}
	}

	for _, name := range utils.GetSortedMapKeys(remaining) {
		if v, ok := cardValue(remaining[name]); ok {
			acq.SetExtension(ExtensionPrefix+strings.ToLower(name), v)
		}
	}

	return acq, nil
}

func cardFloat(card fitsio.Card) (float64, bool) {
	switch v := card.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	}
	return 0, false
}

func cardValue(card fitsio.Card) (metadata.Value, bool) {
	switch v := card.Value.(type) {
	case string:
		return metadata.StringValue(v), true
	case bool:
		return metadata.StringValue(strconv.FormatBool(v)), true
	case int:
		return metadata.IntValue(int64(v)), true
	case int64:
		return metadata.IntValue(v), true
	case int32:
		return metadata.IntValue(int64(v)), true
	case float64:
		return metadata.FloatValue(v), true
	case float32:
		return metadata.FloatValue(float64(v)), true
	}
	return metadata.Value{}, false
}
