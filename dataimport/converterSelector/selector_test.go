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
	"fmt"
	"os"
	"path/filepath"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/logger"
)

func Example_selectDataConverter() {
	dir, _ := os.MkdirTemp("", "selector-")
	defer os.RemoveAll(dir)

	fs := &fileaccess.FSAccess{}
	log := &logger.NullLogger{}

	// By extension
	for _, name := range []string{"scan.fits", "scan.FIT", "scan.ipasc", "scan.bson", "notes.txt"} {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte{}, 0644)
		conv, err := SelectDataConverter(fs, path, "", log)
		fmt.Printf("%v: %T|%v\n", name, conv, err != nil)
		os.Remove(path)
	}

	// By directory contents
	fitsDir := filepath.Join(dir, "fits")
	os.MkdirAll(filepath.Join(fitsDir, "sub"), 0777)
	os.WriteFile(filepath.Join(fitsDir, "scan.fits"), []byte{}, 0644)
	os.WriteFile(filepath.Join(fitsDir, "device.yaml"), []byte{}, 0644)
	os.WriteFile(filepath.Join(fitsDir, "sub", "other.ipasc"), []byte{}, 0644)
	conv, err := SelectDataConverter(fs, fitsDir, "", log)
	fmt.Printf("%T|%v\n", conv, err)

	os.WriteFile(filepath.Join(fitsDir, "scan.ipasc"), []byte{}, 0644)
	_, err = SelectDataConverter(fs, fitsDir, "", log)
	fmt.Println(err)

	_, err = SelectDataConverter(fs, filepath.Join(dir, "nothere"), "", log)
	fmt.Println(dataerror.KindOf(err))

	// Output:
	// scan.fits: fitsimport.FITSImport|false
	// scan.FIT: fitsimport.FITSImport|false
	// scan.ipasc: ipascfile.IPASCFileImport|false
	// scan.bson: ipascfile.IPASCFileImport|false
	// notes.txt: <nil>|true
	// fitsimport.FITSImport|<nil>
	// Failed to determine dataset type to import.
	// FileNotFound
}
