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
	"fmt"
	"io"

	"github.com/ipasc/pacfish/core/padata"
)

// ExportMeasurementsFileName - per frame summary table inside the export zip
const ExportMeasurementsFileName = "measurements.csv"

const measurementsHeader = "Frame,Timestamp,Wavelength,PulseEnergy,Min,Max,Mean"

// Writes one line per frame of the time series. Timestamp, wavelength and pulse
// energy come from the acquisition metadata and are left blank where the
// acquisition has no value for that frame
func writeMeasurementsCSV(csv io.StringWriter, data *padata.PAData) error {
	_, err := csv.WriteString(measurementsHeader + "\n")
	if err != nil {
		return err
	}

	// Missing optional arrays just give empty columns
	timestamps, _ := data.GetMeasurementTimeStamps()
	wavelengths, _ := data.GetAcquisitionWavelengths()
	pulseEnergies, _ := data.GetPulseEnergies()

	for frame := 0; frame < data.NumberOfFrames(); frame++ {
		values, err := data.GetFrame(frame)
		if err != nil {
			return err
		}

		lo, hi, mean := frameStats(values)
		line := fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v",
			frame,
			columnValue(timestamps, frame),
			columnValue(wavelengths, frame),
			columnValue(pulseEnergies, frame),
			lo, hi, mean,
		)

		_, err = csv.WriteString(line + "\n")
		if err != nil {
			return err
		}
	}
	return nil
}

func columnValue(values []float64, idx int) string {
	if idx >= len(values) {
		return ""
	}
	return fmt.Sprintf("%v", values[idx])
}

func frameStats(values []float64) (float64, float64, float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	lo, hi, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}
	return lo, hi, sum / float64(len(values))
}
