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

package ipascfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/iohandler"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/padata"
)

func Test_LoadsContainer(t *testing.T) {
	dir := t.TempDir()
	data := padata.MakeSample("dev-7", 2, 3)
	if err := iohandler.WriteData(filepath.Join(dir, "scan.ipasc"), data); err != nil {
		t.Fatal(err)
	}

	imp := MakeIPASCFileImport(&fileaccess.FSAccess{})
	for _, path := range []string{dir, filepath.Join(dir, "scan.ipasc")} {
		loaded, err := imp.GeneratePAData(path, &logger.NullLogger{})
		if err != nil {
			t.Fatal(err)
		}
		if !loaded.Equal(data) {
			t.Errorf("loaded from %v differs", path)
		}
	}
}

func Test_CorruptContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.bson")
	os.WriteFile(path, []byte{1, 2, 3}, 0644)

	_, err := MakeIPASCFileImport(&fileaccess.FSAccess{}).GeneratePAData(path, &logger.NullLogger{})
	if !dataerror.IsKind(err, dataerror.KindCorruptStructure) {
		t.Errorf("expected CorruptStructure, got %v", err)
	}
}
