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

package utils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"
)

// ZipEntry - one file to put in an archive
type ZipEntry struct {
	Name string
	Data []byte
}

// MakeZip - builds a zip archive in memory containing the given files, in order
func MakeZip(entries []ZipEntry, modified time.Time) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Deflate,
			Modified: modified,
		}

		f, err := w.CreateHeader(header)
		if err != nil {
			return nil, err
		}

		_, err = f.Write(entry.Data)
		if err != nil {
			return nil, err
		}
	}

	// Make sure to check the error on Close.
	err := w.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ReadZip - reverse of MakeZip, returns the files in archive order
func ReadZip(data []byte) ([]ZipEntry, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	result := []ZipEntry{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %v in zip: %v", f.Name, err)
		}
		contents, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %v in zip: %v", f.Name, err)
		}

		result = append(result, ZipEntry{Name: f.Name, Data: contents})
	}
	return result, nil
}
