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

// Package tags is the closed vocabulary of IPASC metadata fields. Every field that
// can appear in a device description or in acquisition metadata is declared here
// with its type, unit and requiredness. Consumers must tolerate identifiers not
// found here (files written against a newer vocabulary) by keeping them opaque.
package tags

import "fmt"

// RegistryVersion - semantic version of the tag vocabulary
const RegistryVersion = "1.0.0"

// ID - the key a tag is stored under, in memory and on disk
type ID string

// ValueType - declared type of a tag's value
type ValueType int

const (
	TypeNumber ValueType = iota
	TypeString
	TypeNumberArray
	TypeStringArray
	TypeMapping
	TypeEnumString
)

var valueTypeNames = map[ValueType]string{
	TypeNumber:      "number",
	TypeString:      "string",
	TypeNumberArray: "number array",
	TypeStringArray: "string array",
	TypeMapping:     "mapping",
	TypeEnumString:  "enumerated string",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ValueType(%v)", int(t))
}

// Scope - which section of the container a tag belongs to
type Scope int

const (
	ScopeGeneral Scope = iota
	ScopeIlluminator
	ScopeDetector
	ScopeAcquisition
)

var scopeNames = map[Scope]string{
	ScopeGeneral:     "general",
	ScopeIlluminator: "illuminator",
	ScopeDetector:    "detector",
	ScopeAcquisition: "acquisition",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scope(%v)", int(s))
}

// Units
const (
	UnitNone          = "none"
	UnitMeter         = "m"
	UnitRadian        = "rad"
	UnitSecond        = "s"
	UnitHertz         = "Hz"
	UnitJoule         = "J"
	UnitWatt          = "W"
	UnitKelvin        = "K"
	UnitMeterPerSec   = "m/s"
	UnitMeterAndJoule = "m, J"
	UnitMeterAndWatt  = "m, W"
	UnitHertzAndNone  = "Hz, none"
	UnitRadianAndNone = "rad, none"
)

// Tag - immutable descriptor of one metadata field
type Tag struct {
	ID       ID
	Name     string
	Type     ValueType
	Unit     string
	Required bool
	Scope    Scope

	// Fixed number of entries for number arrays, 0 means any length
	Arity int

	// Value is a pair of number arrays ([x values, y values]) that must be equally long
	Paired bool

	allowed []string
}

// Allowed - permitted values of an enumerated tag. Returns a copy
func (t Tag) Allowed() []string {
	if len(t.allowed) == 0 {
		return nil
	}
	result := make([]string, len(t.allowed))
	copy(result, t.allowed)
	return result
}

// IsAllowed - true if the tag is not enumerated, or value is one of its permitted values
func (t Tag) IsAllowed(value string) bool {
	if t.Type != TypeEnumString {
		return true
	}
	for _, a := range t.allowed {
		if a == value {
			return true
		}
	}
	return false
}

func (t Tag) String() string {
	req := "optional"
	if t.Required {
		req = "required"
	}
	return fmt.Sprintf("%v (%v, %v, unit: %v, %v)", t.ID, t.Name, t.Type, t.Unit, req)
}
