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

package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/padata"
)

// DataConverter - turns a vendor's files into an acquisition container. The
// import path is either the file itself or a directory holding exactly one
// file the converter understands
type DataConverter interface {
	GeneratePAData(importPath string, log logger.ILogger) (*padata.PAData, error)
}

// HasExtension - case insensitive check of a file name against a list of extensions (with dots)
func HasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ResolveInputFile - if importPath is a directory, returns the one file in it
// with a matching extension, otherwise importPath itself
func ResolveInputFile(fs fileaccess.FileAccess, importPath string, extensions []string) (string, error) {
	info, err := os.Stat(importPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", dataerror.MakeFileNotFoundError(importPath, err)
		}
		return "", err
	}
	if !info.IsDir() {
		return importPath, nil
	}

	matches, err := FindFiles(fs, importPath, extensions)
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("Expected one %v file in %v, found %v", strings.Join(extensions, "/"), importPath, len(matches))
	}
	return filepath.Join(importPath, matches[0]), nil
}

// FindFiles - files directly inside dir with one of the extensions, relative to dir
func FindFiles(fs fileaccess.FileAccess, dir string, extensions []string) ([]string, error) {
	items, err := fs.ListObjects(dir, "")
	if err != nil {
		return nil, fmt.Errorf("Failed to list files in %v: %v", dir, err)
	}

	result := []string{}
	for _, item := range items {
		if !strings.Contains(item, "/") && HasExtension(item, extensions) {
			result = append(result, item)
		}
	}
	return result, nil
}
