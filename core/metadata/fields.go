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

package metadata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/tags"
)

// Fields - a section of metadata (an illuminator, a detector, the general
// device info or the acquisition parameters). Values for tags in the registry
// are keyed by tag ID, anything else read from a file lands in the extension
// slot and is written back untouched.
type Fields struct {
	values     map[tags.ID]Value
	extensions Map
}

func NewFields() Fields {
	return Fields{values: map[tags.ID]Value{}, extensions: Map{}}
}

func (f *Fields) init() {
	if f.values == nil {
		f.values = map[tags.ID]Value{}
	}
	if f.extensions == nil {
		f.extensions = Map{}
	}
}

// Set - stores a value for a registered tag. Enumerated tags are checked
// against their allowed values, and on failure nothing is changed
func (f *Fields) Set(id tags.ID, value Value) error {
	tag, ok := tags.Lookup(id)
	if !ok {
		return dataerror.MakeInvalidArgumentError(fmt.Errorf("Unknown tag: %v", id))
	}

	if tag.Type == tags.TypeEnumString {
		if value.DataType != TypeString {
			return dataerror.MakeInvalidArgumentError(fmt.Errorf("%v must be a string, got %v", id, value.DataType))
		}
		if !tag.IsAllowed(value.SValue) {
			return dataerror.MakeInvalidArgumentError(fmt.Errorf("Unsupported %v: %v", id, value.SValue))
		}
	}

	f.init()
	f.values[id] = value.Clone()
	return nil
}

// SetRaw - stores whatever was read from a file. Known tags go in as they
// are, without validation (that's the consistency checker's job), unknown
// keys are kept as extensions
func (f *Fields) SetRaw(key string, value Value) {
	f.init()
	if tags.IsKnown(key) {
		f.values[tags.ID(key)] = value.Clone()
	} else {
		f.extensions[key] = value.Clone()
	}
}

// Get - snapshot of the value stored for a tag
func (f Fields) Get(id tags.ID) (Value, bool) {
	v, ok := f.values[id]
	if !ok {
		return Value{}, false
	}
	return v.Clone(), true
}

func (f Fields) Has(id tags.ID) bool {
	_, ok := f.values[id]
	return ok
}

func (f *Fields) Delete(id tags.ID) {
	delete(f.values, id)
}

// IDs - identifiers of the tags present, sorted
func (f Fields) IDs() []tags.ID {
	result := make([]tags.ID, 0, len(f.values))
	for id := range f.values {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (f Fields) Len() int {
	return len(f.values)
}

func (f Fields) Extension(key string) (Value, bool) {
	v, ok := f.extensions[key]
	if !ok {
		return Value{}, false
	}
	return v.Clone(), true
}

// SetExtension - stores a key the registry doesn't know. Keys of registered tags are refused
func (f *Fields) SetExtension(key string, value Value) error {
	if tags.IsKnown(key) {
		return dataerror.MakeInvalidArgumentError(fmt.Errorf("%v is a registered tag, use Set", key))
	}
	f.init()
	f.extensions[key] = value.Clone()
	return nil
}

func (f Fields) ExtensionKeys() []string {
	return f.extensions.Keys()
}

// Extensions - snapshot of the extension slot
func (f Fields) Extensions() Map {
	return f.extensions.Clone()
}

// Keys - every key present (tags and extensions), sorted, as stored on disk
func (f Fields) Keys() []string {
	result := make([]string, 0, len(f.values)+len(f.extensions))
	for id := range f.values {
		result = append(result, string(id))
	}
	result = append(result, f.extensions.Keys()...)
	sort.Strings(result)
	return result
}

// Lookup - value for a key whether it's a tag or an extension
func (f Fields) Lookup(key string) (Value, bool) {
	if v, ok := f.values[tags.ID(key)]; ok {
		return v.Clone(), true
	}
	return f.Extension(key)
}

func (f Fields) Clone() Fields {
	result := NewFields()
	for id, v := range f.values {
		result.values[id] = v.Clone()
	}
	for k, v := range f.extensions {
		result.extensions[k] = v.Clone()
	}
	return result
}

func (f Fields) Equal(o Fields) bool {
	if len(f.values) != len(o.values) || !f.extensions.Equal(o.extensions) {
		return false
	}
	for id, v := range f.values {
		ov, ok := o.values[id]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (f Fields) ToString() string {
	parts := []string{}
	for _, k := range f.Keys() {
		v, _ := f.Lookup(k)
		parts = append(parts, k+":"+v.ToString())
	}
	return "{" + strings.Join(parts, " ") + "}"
}
