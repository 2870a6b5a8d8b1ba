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

package iohandler

import (
	"fmt"
	"strings"
	"time"

	"github.com/ipasc/pacfish/core/awsutil"
	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/metadata"
	"github.com/ipasc/pacfish/core/padata"
	"github.com/ipasc/pacfish/core/tags"
	"github.com/ipasc/pacfish/core/timestamper"
	"github.com/ipasc/pacfish/core/utils"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// IOHandler - reads and writes acquisition files through a FileAccess, so the
// same code serves local disk and S3. Holds no state between calls
type IOHandler struct {
	fs      fileaccess.FileAccess
	stamper timestamper.ITimeStamper
	log     logger.ILogger
}

func MakeIOHandler(fs fileaccess.FileAccess, stamper timestamper.ITimeStamper, log logger.ILogger) IOHandler {
	if stamper == nil {
		stamper = &timestamper.UnixTimeNowStamper{}
	}
	if log == nil {
		log = &logger.NullLogger{}
	}
	return IOHandler{fs: fs, stamper: stamper, log: log}
}

// WriteData - encodes the whole container, then writes it in one go. If
// encoding fails nothing is written, if writing fails no partial file is left
func (h IOHandler) WriteData(bucket string, path string, data *padata.PAData) (err error) {
	defer recordOperation(opWrite, time.Now(), &err)

	encoded, err := EncodePAData(data, h.stamper.GetTimeNowSec())
	if err != nil {
		h.log.Errorf("Not writing %v: %v", path, err)
		return err
	}

	if err = h.fs.WriteObject(bucket, path, encoded); err != nil {
		err = dataerror.MakeWriteFailedError(errors.Wrapf(err, "failed to write %v", path))
		h.log.Errorf("%v", err)
		return err
	}

	recordBytes(opWrite, len(encoded))
	h.log.Debugf("Wrote %v bytes to %v", len(encoded), path)
	return nil
}

func (h IOHandler) LoadData(bucket string, path string) (result *padata.PAData, err error) {
	defer recordOperation(opLoad, time.Now(), &err)

	raw, err := h.readObject(bucket, path)
	if err != nil {
		return nil, err
	}
	recordBytes(opLoad, len(raw))

	result, err = DecodePAData(raw)
	if err != nil {
		err = errors.Wrapf(err, "failed to load %v", path)
		h.log.Errorf("%v", err)
		return nil, err
	}

	h.log.Debugf("Loaded %v bytes from %v", len(raw), path)
	return result, nil
}

// FileInfo - summary of a file, read without decoding any of the arrays in it
type FileInfo struct {
	FormatVersion        string
	CreatedUnixSec       int64
	SizeBytes            int
	DType                metadata.DType
	Shape                []int
	DeviceUUID           string
	AcquisitionUUID      string
	NumberOfIlluminators int
	NumberOfDetectors    int
	ExtensionKeys        []string
}

func (i FileInfo) String() string {
	return fmt.Sprintf("version %v, created %v, %v bytes, %v %v, device %q, acquisition %q, %v illuminator(s), %v detector(s), extensions %v",
		i.FormatVersion, i.CreatedUnixSec, i.SizeBytes, i.DType, i.Shape, i.DeviceUUID, i.AcquisitionUUID,
		i.NumberOfIlluminators, i.NumberOfDetectors, i.ExtensionKeys)
}

func (h IOHandler) ReadFileInfo(bucket string, path string) (info FileInfo, err error) {
	defer recordOperation(opReadInfo, time.Now(), &err)

	raw, err := h.readObject(bucket, path)
	if err != nil {
		return info, err
	}

	info, err = ReadFileInfoFromBytes(raw)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %v", path)
	}
	return info, err
}

// ReadFileInfoFromBytes - FileInfo of an encoded container
func ReadFileInfoFromBytes(raw []byte) (FileInfo, error) {
	info := FileInfo{SizeBytes: len(raw), Shape: []int{}, ExtensionKeys: []string{}}

	root, version, created, err := parseRoot(raw)
	if err != nil {
		return info, err
	}
	info.FormatVersion = version.String()
	info.CreatedUnixSec = created

	if dtype, ok := root.Lookup(keyTimeSeries, attrDType).StringValueOK(); ok {
		info.DType = metadata.DType(dtype)
	}
	if shape, err := decodeShape(root.Lookup(keyTimeSeries, attrShape)); err == nil {
		info.Shape = shape
	}

	info.DeviceUUID, _ = root.Lookup(keyDevice, keyGeneral, string(tags.UniqueIdentifier)).StringValueOK()
	info.AcquisitionUUID, _ = root.Lookup(keyAcquisition, string(tags.UUID)).StringValueOK()
	info.NumberOfIlluminators = countElements(root, keyDevice, keyIlluminators)
	info.NumberOfDetectors = countElements(root, keyDevice, keyDetectors)

	elements, err := root.Elements()
	if err != nil {
		return info, corrupt("failed to read root elements: %v", err)
	}
	for _, elem := range elements {
		key := elem.Key()
		if !strings.HasPrefix(key, reservedPrefix) && key != keyTimeSeries && key != keyAcquisition && key != keyDevice {
			info.ExtensionKeys = append(info.ExtensionKeys, key)
		}
	}

	return info, nil
}

func countElements(root bson.Raw, path ...string) int {
	group, ok := root.Lookup(path...).DocumentOK()
	if !ok {
		return 0
	}
	elements, err := group.Elements()
	if err != nil {
		return 0
	}
	return len(elements)
}

func (h IOHandler) readObject(bucket string, path string) ([]byte, error) {
	raw, err := h.fs.ReadObject(bucket, path)
	if err != nil {
		if h.fs.IsNotFoundError(err) {
			err = dataerror.MakeFileNotFoundError(path, err)
		} else {
			err = errors.Wrapf(err, "failed to read %v", path)
		}
		h.log.Errorf("%v", err)
		return nil, err
	}
	return raw, nil
}

// EncodePAData - the bytes WriteData would write
func EncodePAData(data *padata.PAData, createdUnixSec int64) ([]byte, error) {
	return encodePAData(data, createdUnixSec)
}

// DecodePAData - reverse of EncodePAData
func DecodePAData(raw []byte) (*padata.PAData, error) {
	return decodePAData(raw)
}

// MakeIOHandlerForPath - handler plus bucket and key for a local path or an
// s3://bucket/key url. Local paths get an empty bucket
func MakeIOHandlerForPath(path string, awsRegion string, log logger.ILogger) (IOHandler, string, string, error) {
	if !fileaccess.IsS3Url(path) {
		return MakeIOHandler(&fileaccess.FSAccess{}, nil, log), "", path, nil
	}

	bucket, err := fileaccess.GetBucketFromS3Url(path)
	if err != nil {
		return IOHandler{}, "", "", dataerror.MakeInvalidArgumentError(err)
	}
	key, err := fileaccess.GetPathFromS3Url(path)
	if err != nil {
		return IOHandler{}, "", "", dataerror.MakeInvalidArgumentError(err)
	}

	sess, err := awsutil.GetSessionWithRegion(awsRegion)
	if err != nil {
		return IOHandler{}, "", "", errors.Wrap(err, "failed to create AWS session")
	}
	s3, err := awsutil.GetS3(sess)
	if err != nil {
		return IOHandler{}, "", "", errors.Wrap(err, "failed to create S3 client")
	}

	return MakeIOHandler(fileaccess.MakeS3Access(s3), nil, log), bucket, key, nil
}

// WriteData - writes to a local path or an s3://bucket/key url
func WriteData(path string, data *padata.PAData) error {
	h, bucket, key, err := MakeIOHandlerForPath(path, "", nil)
	if err != nil {
		return err
	}
	return h.WriteData(bucket, key, data)
}

// LoadData - loads from a local path or an s3://bucket/key url
func LoadData(path string) (*padata.PAData, error) {
	h, bucket, key, err := MakeIOHandlerForPath(path, "", nil)
	if err != nil {
		return nil, err
	}
	return h.LoadData(bucket, key)
}

// DefaultFileName - name used when saving an acquisition without an explicit name
func DefaultFileName(data *padata.PAData) string {
	name := "acquisition"
	if v, ok := data.MetaDataAcquisition.Get(tags.UUID); ok && v.DataType == metadata.TypeString {
		name = v.SValue
	}
	return utils.MakeSaveableFileName(name) + FileExtension
}
