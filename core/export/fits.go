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

// Package export writes acquisitions in forms other tools can open: the time
// series as a FITS image, the metadata as JSON, and a zip bundling those with
// the device definition.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/astrogo/fitsio"
	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/tags"
	"github.com/ipasc/pacfish/core/utils"
)

// FITS header cards holding acquisition metadata. The FITS converter reads
// the same names back
const (
	CardUUID           = "UUID"
	CardDevice         = "DEVICE"
	CardDType          = "DTYPE"
	CardADRate         = "ADRATE"
	CardWavelength     = "WAVELEN"
	CardPulseEnergy    = "PULSEEN"
	CardSpeedOfSound   = "SOS"
	CardGain           = "GAIN"
	CardCoupling       = "COUPLING"
	CardScanMethod     = "SCANMETH"
	CardTimeStart      = "TSTART"
	CardTimeStep       = "TSTEP"
	CardDimensionality = "DIMENS"
)

// Cards FITS itself defines, never treated as metadata
var StructuralCards = []string{"SIMPLE", "BITPIX", "NAXIS", "EXTEND", "BZERO", "BSCALE", "END", "COMMENT", "HISTORY", "XTENSION", "PCOUNT", "GCOUNT"}

// Max number of WAVELENn cards read or written
const MaxWavelengthCards = 99

// WavelengthCard - name of the card holding the idx'th (from 1) wavelength
// when there is more than one
func WavelengthCard(idx int) string {
	return fmt.Sprintf("%v%v", CardWavelength, idx)
}

// IsStructuralCard - true for SIMPLE, BITPIX, NAXISn and the like
func IsStructuralCard(name string) bool {
	if utils.ItemInSlice(name, StructuralCards) {
		return true
	}
	if len(name) > len("NAXIS") && name[:len("NAXIS")] == "NAXIS" {
		return true
	}
	return false
}

// WriteTimeSeriesFITS - the time series as the primary image of a FITS file,
// stored as 64bit floats. FITS lists the fastest varying axis first so the
// axes come out reversed relative to the array shape
func WriteTimeSeriesFITS(w io.Writer, data *padata.PAData) error {
	arr := data.GetTimeSeriesData()
	if arr == nil {
		return dataerror.MakeMissingDerivedKeyError("binary_time_series_data")
	}
	if err := arr.Validate(); err != nil {
		return dataerror.MakeUnsupportedTypeError(err)
	}

	fits, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer fits.Close()

	im := fitsio.NewImage(-64, utils.ReverseCopy(arr.Shape))
	defer im.Close()

	err = im.Header().Append(HeaderCards(data)...)
	if err != nil {
		return err
	}

	err = im.Write(arr.Data)
	if err != nil {
		return err
	}
	return fits.Write(im)
}

// HeaderCards - acquisition metadata that fits in FITS header cards. Only
// scalars are written, plus the wavelengths and evenly spaced timestamps
func HeaderCards(data *padata.PAData) []fitsio.Card {
	acq := data.MetaDataAcquisition
	cards := []fitsio.Card{}

	if arr := data.GetTimeSeriesData(); arr != nil {
		cards = append(cards, fitsio.Card{Name: CardDType, Value: string(arr.DType), Comment: "stored dtype of the time series"})
	}

	strCards := []struct {
		name    string
		id      tags.ID
		comment string
	}{
		{CardUUID, tags.UUID, "acquisition uuid"},
		{CardDevice, tags.PhotoacousticImagingDeviceReference, "device uuid"},
		{CardDimensionality, tags.Dimensionality, "time, space or time and space"},
		{CardCoupling, tags.AcousticCouplingAgent, "acoustic coupling agent"},
		{CardScanMethod, tags.ScanningMethod, "scanning method"},
	}
	for _, s := range strCards {
		if v, ok := acq.Get(s.id); ok && v.DataType == metadata.TypeString {
			cards = append(cards, fitsio.Card{Name: s.name, Value: v.SValue, Comment: s.comment})
		}
	}

	numCards := []struct {
		name string
		id   tags.ID
	}{
		{CardADRate, tags.ADSamplingRate},
		{CardSpeedOfSound, tags.SpeedOfSound},
		{CardGain, tags.OverallGain},
	}
	for _, n := range numCards {
		if v, ok := acq.Get(n.id); ok {
			if f, ok := v.AsFloat(); ok {
				cards = append(cards, fitsio.Card{Name: n.name, Value: f, Comment: tags.MustLookup(n.id).Unit})
			}
		}
	}

	if wavelengths, err := data.GetAcquisitionWavelengths(); err == nil {
		if len(wavelengths) == 1 {
			cards = append(cards, fitsio.Card{Name: CardWavelength, Value: wavelengths[0], Comment: tags.UnitMeter})
		} else {
			for c, wl := range wavelengths {
				if c >= MaxWavelengthCards {
					break
				}
				cards = append(cards, fitsio.Card{Name: WavelengthCard(c + 1), Value: wl, Comment: tags.UnitMeter})
			}
		}
	}

	if v, ok := acq.Get(tags.PulseEnergy); ok {
		if energies, ok := v.AsFloats(); ok && len(energies) > 0 && allEqual(energies) {
			cards = append(cards, fitsio.Card{Name: CardPulseEnergy, Value: energies[0], Comment: "per frame, " + tags.UnitJoule})
		}
	}

	if stamps, err := data.GetMeasurementTimeStamps(); err == nil && len(stamps) > 0 {
		cards = append(cards, fitsio.Card{Name: CardTimeStart, Value: stamps[0], Comment: "first frame, " + tags.UnitSecond})
		if step, ok := evenStep(stamps); ok {
			cards = append(cards, fitsio.Card{Name: CardTimeStep, Value: step, Comment: "between frames, " + tags.UnitSecond})
		}
	}

	return cards
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// evenStep - the spacing of the timestamps, if they are evenly spaced
func evenStep(stamps []float64) (float64, bool) {
	if len(stamps) < 2 {
		return 0, false
	}
	step := stamps[1] - stamps[0]
	for c := 2; c < len(stamps); c++ {
		expected := stamps[0] + float64(c)*step
		if math.Abs(stamps[c]-expected) > 1e-9*math.Max(1, math.Abs(expected)) {
			return 0, false
		}
	}
	return step, true
}
