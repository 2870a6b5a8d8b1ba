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

package qualitycheck

import (
	"fmt"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/fileaccess"
)

// ReportFileFinding - a finding as written to a JSON report
type ReportFileFinding struct {
	Location string `json:"location"`
	Tag      string `json:"tag"`
	Kind     string `json:"kind"`
	Problem  string `json:"problem"`
}

// ReportFile - JSON form of a Report for the file it was made from
type ReportFile struct {
	Path     string              `json:"path"`
	Passed   bool                `json:"passed"`
	Findings []ReportFileFinding `json:"findings"`
}

func MakeReportFile(sourcePath string, report Report) ReportFile {
	result := ReportFile{Path: sourcePath, Passed: report.Passed, Findings: []ReportFileFinding{}}
	for _, f := range report.Findings {
		result.Findings = append(result.Findings, ReportFileFinding{Location: f.Location, Tag: f.Tag, Kind: f.Kind.String(), Problem: f.Problem})
	}
	return result
}

// WriteReportFile - saves the report as JSON. An existing object at path is
// only replaced if overwrite is set
func WriteReportFile(fs fileaccess.FileAccess, bucket string, path string, report ReportFile, overwrite bool) error {
	if !overwrite {
		exists, err := fs.ObjectExists(bucket, path)
		if err != nil {
			return dataerror.MakeWriteFailedError(err)
		}
		if exists {
			return dataerror.MakeWriteFailedError(fmt.Errorf("report %v already exists", path))
		}
	}

	if err := fs.WriteJSON(bucket, path, report); err != nil {
		return dataerror.MakeWriteFailedError(err)
	}
	return nil
}
