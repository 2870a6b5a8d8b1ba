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
	"fmt"
	"strings"
)

// Generic interface for reading/writing files. Code reading and writing
// acquisition files doesn't care if they live on local disk or in S3, so
// everything goes through this.

// Besides just needing a path, we may need a root dir or bucket at the start
// of a path. For local files the "bucket" is a root directory, and may be empty.

type FileAccess interface {
	ListObjects(bucket string, prefix string) ([]string, error)
	ObjectExists(bucket string, path string) (bool, error)

	ReadObject(bucket string, path string) ([]byte, error)

	// WriteObject - implementations must never leave a partially written object
	// at path if the write fails
	WriteObject(bucket string, path string, data []byte) error

	WriteJSON(bucket string, path string, itemsPtr interface{}) error

	IsNotFoundError(err error) bool
}

const s3Scheme = "s3://"

// IsS3Url - true if path looks like s3://bucket/key
func IsS3Url(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

func GetBucketFromS3Url(url string) (string, error) {
	bucket, _, err := splitS3Url(url)
	return bucket, err
}

func GetPathFromS3Url(url string) (string, error) {
	_, path, err := splitS3Url(url)
	return path, err
}

func splitS3Url(url string) (string, string, error) {
	trimmedUrl := strings.TrimPrefix(url, s3Scheme)
	if trimmedUrl == url {
		return "", "", fmt.Errorf("Not a valid S3 url: %v", url)
	}

	// Get the bit before the first slash, that's the bucket
	slashPos := strings.Index(trimmedUrl, "/")
	if slashPos <= 0 || slashPos == len(trimmedUrl)-1 {
		return "", "", fmt.Errorf("Failed to get bucket and key from S3 url: %v", url)
	}

	return trimmedUrl[0:slashPos], trimmedUrl[slashPos+1:], nil
}
