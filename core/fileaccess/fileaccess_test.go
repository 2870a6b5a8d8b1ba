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
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testData struct {
	Name        string `json:"name"`
	Value       int    `json:"value"`
	Description string `json:"description"`
}

func runTest(fs FileAccess, bucket string) {
	fmt.Printf("JSON: %v\n", fs.WriteJSON(bucket, "the-files/pretty.json", testData{Name: "Hello", Value: 778, Description: "World"}))

	// Check file exists, should fail
	exists, err := fs.ObjectExists(bucket, "the-files/data.bin")
	fmt.Printf("Exists1: %v|%v\n", exists, err)

	fmt.Printf("Binary: %v\n", fs.WriteObject(bucket, "the-files/subdir/data.bin", []byte{250, 130, 10, 0, 33}))
	fmt.Printf("Binary overwrite: %v\n", fs.WriteObject(bucket, "the-files/data.bin", []byte{1, 2, 3}))

	exists, err = fs.ObjectExists(bucket, "the-files/data.bin")
	fmt.Printf("Exists2: %v|%v\n", exists, err)

	var contents testData
	jsonBytes, err := fs.ReadObject(bucket, "the-files/pretty.json")
	if err == nil {
		err = json.Unmarshal(jsonBytes, &contents)
	}
	fmt.Printf("Read JSON: %v, %v\n", err, contents)

	data, err := fs.ReadObject(bucket, "the-files/subdir/data.bin")
	fmt.Printf("Read Binary: %v, %v\n", err, data)

	// Read bad path, then check that this is a not found error
	_, err = fs.ReadObject(bucket, "the-files/nothere.bin")
	fmt.Printf("Read bad path, got not found error: %v\n", fs.IsNotFoundError(err))

	// A directory isn't an object
	exists, err = fs.ObjectExists(bucket, "the-files/subdir")
	fmt.Printf("Exists dir: %v|%v\n", exists, err)

	listing, err := fs.ListObjects(bucket, "the-files/")
	fmt.Printf("Listing: %v, %v\n", err, listing)

	listing, err = fs.ListObjects(bucket, "the-files/subdir/da")
	fmt.Printf("Listing with prefix: %v, %v\n", err, listing)

	listing, err = fs.ListObjects(bucket, "the-files/non-existant-path/ug")
	fmt.Printf("Listing bad path: %v, %v\n", err, listing)
}

func Example_localFileSystem() {
	root, err := os.MkdirTemp("", "fileaccess-")
	fmt.Printf("Setup: %v\n", err)
	defer os.RemoveAll(root)

	runTest(&FSAccess{}, root)

	// Output:
	// Setup: <nil>
	// JSON: <nil>
	// Exists1: false|<nil>
	// Binary: <nil>
	// Binary overwrite: <nil>
	// Exists2: true|<nil>
	// Read JSON: <nil>, {Hello 778 World}
	// Read Binary: <nil>, [250 130 10 0 33]
	// Read bad path, got not found error: true
	// Exists dir: false|<nil>
	// Listing: <nil>, [the-files/data.bin the-files/pretty.json the-files/subdir/data.bin]
	// Listing with prefix: <nil>, [the-files/subdir/data.bin]
	// Listing bad path: <nil>, []
}

func Example_s3Urls() {
	fmt.Println(IsS3Url("s3://bucket/some/file.ipasc"), IsS3Url("/tmp/file.ipasc"))
	fmt.Println(GetBucketFromS3Url("s3://bucket/some/file.ipasc"))
	fmt.Println(GetPathFromS3Url("s3://bucket/some/file.ipasc"))
	_, err := GetBucketFromS3Url("/tmp/file.ipasc")
	fmt.Println(err)
	_, err = GetPathFromS3Url("s3://bucket/")
	fmt.Println(err)

	// Output:
	// true false
	// bucket <nil>
	// some/file.ipasc <nil>
	// Not a valid S3 url: /tmp/file.ipasc
	// Failed to get bucket and key from S3 url: s3://bucket/
}

func Test_WriteObjectFailureLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	fs := &FSAccess{}

	// Destination is a non-empty directory, so the final rename must fail
	if err := os.MkdirAll(filepath.Join(root, "out.ipasc", "child"), 0777); err != nil {
		t.Fatal(err)
	}

	err := fs.WriteObject(root, "out.ipasc", []byte{1, 2, 3})
	if err == nil {
		t.Fatalf("expected write to fail")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.ipasc" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("temp file left behind: %v", names)
	}
}

func Test_WriteObjectEmptyRoot(t *testing.T) {
	dir := t.TempDir()
	fs := &FSAccess{}

	path := filepath.Join(dir, "a", "b.bin")
	if err := fs.WriteObject("", path, []byte("xyz")); err != nil {
		t.Fatal(err)
	}
	data, err := fs.ReadObject("", path)
	if err != nil || string(data) != "xyz" {
		t.Errorf("read back %v, %v", string(data), err)
	}
}
