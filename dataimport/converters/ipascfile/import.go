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
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/iohandler"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/dataimport/converter"
)

// Extensions - files that are already containers, only loaded
var Extensions = []string{iohandler.FileExtension, ".bson"}

type IPASCFileImport struct {
	fs fileaccess.FileAccess
}

func MakeIPASCFileImport(fs fileaccess.FileAccess) IPASCFileImport {
	return IPASCFileImport{fs: fs}
}

func (i IPASCFileImport) GeneratePAData(importPath string, log logger.ILogger) (*padata.PAData, error) {
	path, err := converter.ResolveInputFile(i.fs, importPath, Extensions)
	if err != nil {
		return nil, err
	}

	log.Infof("Loading container: %v", path)
	return iohandler.MakeIOHandler(i.fs, nil, log).LoadData("", path)
}
