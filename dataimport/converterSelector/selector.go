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

package converterSelector

import (
	"errors"
	"fmt"
	"os"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/dataimport/converter"
	"github.com/ipasc/pacfish/dataimport/converters/fitsimport"
	"github.com/ipasc/pacfish/dataimport/converters/ipascfile"
)

// SelectDataConverter - Looks at the specified path and determines what importer to use.
// A file is picked by extension, a directory by the one importable file it contains.
// defaultDevicePath is handed to converters that need a device definition
func SelectDataConverter(fs fileaccess.FileAccess, importPath string, defaultDevicePath string, log logger.ILogger) (converter.DataConverter, error) {
	info, err := os.Stat(importPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, dataerror.MakeFileNotFoundError(importPath, err)
		}
		return nil, err
	}

	if !info.IsDir() {
		if converter.HasExtension(importPath, fitsimport.Extensions) {
			log.Infof("Assuming FITS file...")
			return fitsimport.MakeFITSImport(fs, defaultDevicePath), nil
		}
		if converter.HasExtension(importPath, ipascfile.Extensions) {
			log.Infof("Assuming IPASC container...")
			return ipascfile.MakeIPASCFileImport(fs), nil
		}
		return nil, fmt.Errorf("Failed to determine type of file to import: %v", importPath)
	}

	fitsFiles, err := converter.FindFiles(fs, importPath, fitsimport.Extensions)
	if err != nil {
		return nil, err
	}
	containerFiles, err := converter.FindFiles(fs, importPath, ipascfile.Extensions)
	if err != nil {
		return nil, err
	}

	log.Infof("SelectDataConverter: Path contains %v FITS and %v container files...", len(fitsFiles), len(containerFiles))

	if len(fitsFiles) == 1 && len(containerFiles) == 0 {
		return fitsimport.MakeFITSImport(fs, defaultDevicePath), nil
	}
	if len(containerFiles) == 1 && len(fitsFiles) == 0 {
		return ipascfile.MakeIPASCFileImport(fs), nil
	}

	// Log the paths to help us diagnose issues...
	items, _ := fs.ListObjects(importPath, "")
	logMsg := "SelectDataConverter path listing:\n"
	for c, item := range items {
		logMsg += fmt.Sprintf("  %v. %v\n", c+1, item)
	}
	log.Infof(logMsg)

	// Unknown
	return nil, errors.New("Failed to determine dataset type to import.")
}
