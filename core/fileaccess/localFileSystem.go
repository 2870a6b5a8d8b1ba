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

package fileaccess

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ipasc/pacfish/core/utils"
)

// Implementation of file access using local file system
type FSAccess struct {
}

// ListObjects - every file under the root whose path (relative to the root, / separated) starts with prefix
func (fs *FSAccess) ListObjects(rootPath string, prefix string) ([]string, error) {
	result := []string{}
	root := fs.filePath(rootPath, "")

	err := filepath.Walk(root, func(pathFound string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, pathFound)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			result = append(result, rel)
		}
		return nil
	})

	if err != nil && fs.IsNotFoundError(err) {
		return []string{}, nil
	}
	return result, err
}

func (fs *FSAccess) ObjectExists(rootPath string, path string) (bool, error) {
	info, err := os.Stat(fs.filePath(rootPath, path))
	if err == nil {
		return !info.IsDir(), nil
	}
	if fs.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (fs *FSAccess) ReadObject(rootPath string, path string) ([]byte, error) {
	fullPath := fs.filePath(rootPath, path)
	return os.ReadFile(fullPath)
}

// WriteObject - writes to a temp file next to the destination and renames it
// into place, so a failed write leaves any previous file untouched and never
// leaves a truncated one behind
func (fs *FSAccess) WriteObject(rootPath string, path string, data []byte) error {
	fullPath := fs.filePath(rootPath, path)

	// Ensure any subdirs in between are created
	createPath := filepath.Dir(fullPath)
	err := os.MkdirAll(createPath, 0777)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(createPath, "."+filepath.Base(fullPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0644)
	}
	if err == nil {
		err = os.Rename(tmpPath, fullPath)
	}

	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (fs *FSAccess) WriteJSON(rootPath string, path string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return fs.WriteObject(rootPath, path, fileData)
}

func (fs *FSAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (fs *FSAccess) filePath(rootPath string, filePath string) string {
	if len(rootPath) == 0 {
		return filepath.Clean(filePath)
	}
	return filepath.Join(rootPath, filePath)
}
