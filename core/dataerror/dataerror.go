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

// Error kinds shared by the builders, the consistency checker and the
// persistence layer. Mirrors the way an HTTP status travels with an error,
// except the "status" here is a Kind describing what went wrong with the data.
package dataerror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota

	// Unsupported enumerated value and similar, raised by setters immediately
	KindInvalidArgument

	// Checker findings, never fatal
	KindMissingRequiredField
	KindTypeMismatch
	KindInconsistentValue

	// Raised by derived accessors of the container
	KindMissingDerivedKey

	// Persistence failures
	KindFileNotFound
	KindUnsupportedType
	KindCorruptStructure
	KindWriteFailed
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	KindInvalidArgument:      "InvalidArgument",
	KindMissingRequiredField: "MissingRequiredField",
	KindTypeMismatch:         "TypeMismatch",
	KindInconsistentValue:    "InconsistentValue",
	KindMissingDerivedKey:    "MissingDerivedKey",
	KindFileNotFound:         "FileNotFound",
	KindUnsupportedType:      "UnsupportedType",
	KindCorruptStructure:     "CorruptStructure",
	KindWriteFailed:          "WriteFailed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%v)", int(k))
}

type Error interface {
	error
	Kind() Kind
}

type KindError struct {
	Code Kind
	Err  error
}

func (ke KindError) Error() string {
	return ke.Err.Error()
}

func (ke KindError) Kind() Kind {
	return ke.Code
}

func (ke KindError) Unwrap() error {
	return ke.Err
}

func MakeKindError(kind Kind, err error) KindError {
	return KindError{
		Code: kind,
		Err:  err,
	}
}

func MakeInvalidArgumentError(err error) KindError {
	return MakeKindError(KindInvalidArgument, err)
}

func MakeMissingDerivedKeyError(key string) KindError {
	return MakeKindError(KindMissingDerivedKey, fmt.Errorf("derived key %v not present", key))
}

func MakeFileNotFoundError(path string, err error) KindError {
	return MakeKindError(KindFileNotFound, fmt.Errorf("%v not found: %v", path, err))
}

func MakeUnsupportedTypeError(err error) KindError {
	return MakeKindError(KindUnsupportedType, err)
}

func MakeCorruptStructureError(err error) KindError {
	return MakeKindError(KindCorruptStructure, err)
}

func MakeWriteFailedError(err error) KindError {
	return MakeKindError(KindWriteFailed, err)
}

// KindOf walks the wrap chain (including github.com/pkg/errors wrapping, which
// implements Unwrap) and returns the first Kind found, or KindUnknown
func KindOf(err error) Kind {
	var ke Error
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsPersistenceFailure(err error) bool {
	switch KindOf(err) {
	case KindFileNotFound, KindUnsupportedType, KindCorruptStructure, KindWriteFailed:
		return true
	}
	return false
}
