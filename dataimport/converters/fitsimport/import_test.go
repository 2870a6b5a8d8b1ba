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

package fitsimport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/google/uuid"
	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/devicedef"
	"github.com/ipasc/pacfish/core/export"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/qualitycheck"
	"github.com/ipasc/pacfish/core/tags"
)

func writeDeviceYAML(t *testing.T, path string, def devicedef.DeviceDefinition) {
	var buf bytes.Buffer
	if err := devicedef.WriteDeviceDefinition(&buf, def); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

// A FITS file as a vendor might write it: 16bit samples, a few of our cards, a few of theirs
func writeVendorFITS(t *testing.T, path string) {
	var buf bytes.Buffer
	f, err := fitsio.Create(&buf)
	if err != nil {
		t.Fatal(err)
	}

	im := fitsio.NewImage(16, []int{4, 3})
	err = im.Header().Append(
		fitsio.Card{Name: "ADRATE", Value: 2e7},
		fitsio.Card{Name: "WAVELEN", Value: 8e-7},
		fitsio.Card{Name: "TSTART", Value: 1.5},
		fitsio.Card{Name: "OBSERVER", Value: "lab 3"},
		fitsio.Card{Name: "EXPOSURE", Value: 12},
	)
	if err != nil {
		t.Fatal(err)
	}

	pixels := []int16{}
	for c := 0; c < 12; c++ {
		pixels = append(pixels, int16(c-6))
	}
	if err := im.Write(pixels); err != nil {
		t.Fatal(err)
	}
	if err := f.Write(im); err != nil {
		t.Fatal(err)
	}
	im.Close()
	f.Close()

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func Test_ExportedFITSImportsBackIdentical(t *testing.T) {
	dir := t.TempDir()

	data := padata.MakeSample("dev-1", 2, 6)
	for c := range data.BinaryTimeSeriesData.Data {
		data.BinaryTimeSeriesData.Data[c] = float64(c) - 3
	}
	data.MetaDataAcquisition.Set(tags.AcquisitionWavelengths, metadata.FloatArrayValue([]float64{750e-9, 850e-9}))
	data.MetaDataAcquisition.Set(tags.MeasurementTimestamps, metadata.FloatArrayValue([]float64{10, 10.5}))
	data.MetaDataAcquisition.Set(tags.PulseEnergy, metadata.FloatArrayValue([]float64{0.02, 0.02}))
	data.MetaDataAcquisition.Set(tags.AcousticCouplingAgent, metadata.StringValue("water"))

	var buf bytes.Buffer
	if err := export.WriteTimeSeriesFITS(&buf, data); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "scan.fits"), buf.Bytes(), 0644)
	writeDeviceYAML(t, filepath.Join(dir, devicedef.DefaultFileName), devicedef.DefinitionFromDevice(data.MetaDataDevice))

	// Import from the directory, the FITS file is found in it
	imported, err := MakeFITSImport(&fileaccess.FSAccess{}, "").GeneratePAData(dir, &logger.NullLogger{})
	if err != nil {
		t.Fatal(err)
	}

	if !imported.Equal(data) {
		t.Errorf("imported data differs\n%v\n%v", imported.MetaDataAcquisition.ToString(), data.MetaDataAcquisition.ToString())
	}
}

func Test_VendorFITS(t *testing.T) {
	dir := t.TempDir()
	fitsPath := filepath.Join(dir, "vendor.FITS")
	writeVendorFITS(t, fitsPath)

	// No device.yaml next to it, a default one elsewhere
	defaultDevice := filepath.Join(t.TempDir(), "bench.yaml")
	writeDeviceYAML(t, defaultDevice, devicedef.MakeTemplate())

	data, err := MakeFITSImport(&fileaccess.FSAccess{}, defaultDevice).GeneratePAData(fitsPath, &logger.NullLogger{})
	if err != nil {
		t.Fatal(err)
	}

	arr := data.GetTimeSeriesData()
	if arr.DType != metadata.DTypeInt16 || len(arr.Shape) != 2 || arr.Shape[0] != 3 || arr.Shape[1] != 4 {
		t.Errorf("bad time series %v %v", arr.DType, arr.Shape)
	}
	if v, _ := arr.At(2, 3); v != 5 {
		t.Errorf("bad last sample %v", v)
	}

	acqUUID, _ := data.MetaDataAcquisition.Get(tags.UUID)
	if _, err := uuid.Parse(acqUUID.SValue); err != nil {
		t.Errorf("generated uuid %v: %v", acqUUID.SValue, err)
	}

	if ref, _ := data.MetaDataAcquisition.Get(tags.PhotoacousticImagingDeviceReference); ref.SValue != "my-device" {
		t.Errorf("device reference %v", ref.SValue)
	}

	stamps, err := data.GetMeasurementTimeStamps()
	if err == nil {
		t.Errorf("TSTART without TSTEP over 3 frames should give no timestamps, got %v", stamps)
	}

	if v, ok := data.MetaDataAcquisition.Extension("fits_observer"); !ok || v.SValue != "lab 3" {
		t.Errorf("observer extension %v %v", ok, v.ToString())
	}
	if v, ok := data.MetaDataAcquisition.Extension("fits_exposure"); !ok || v.ToString() != "12" {
		t.Errorf("exposure extension %v %v", ok, v.ToString())
	}

	// The device has 2 detectors but the data 3 frames, that's not something
	// the checker knows about, everything it does check is present
	report := qualitycheck.CheckPADataWithLogger(data, &logger.NullLogger{})
	if !report.Passed {
		t.Errorf("imported data fails checks:\n%v", report)
	}
}

func Example_missingDevice() {
	dir, _ := os.MkdirTemp("", "fitsimport-")
	defer os.RemoveAll(dir)

	os.WriteFile(filepath.Join(dir, "a.fits"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "b.fits"), []byte("x"), 0644)

	_, err := MakeFITSImport(&fileaccess.FSAccess{}, "").GeneratePAData(dir, &logger.NullLogger{})
	fmt.Println(err == nil)

	_, err = MakeFITSImport(&fileaccess.FSAccess{}, "").GeneratePAData(filepath.Join(dir, "c.fits"), &logger.NullLogger{})
	fmt.Println(dataerror.KindOf(err))

	_, err = MakeFITSImport(&fileaccess.FSAccess{}, "").GeneratePAData(filepath.Join(dir, "a.fits"), &logger.NullLogger{})
	fmt.Println(dataerror.KindOf(err))

	// Output:
	// false
	// FileNotFound
	// CorruptStructure
}
