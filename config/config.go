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

// Tool configuration as read from JSON, with environment variable overrides
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ipasc/pacfish/core/logger"
)

// EnvPrefix - any field of ToolConfig can be overridden by an env var named this + the field name
const EnvPrefix = "IPASC_CONFIG_"

// ToolConfig combines env vars and config JSON values
type ToolConfig struct {
	LogLevel        string // DEBUG, INFO or ERROR
	EnvironmentName string

	// Errors are reported to sentry if this is set
	SentryEndpoint string

	// Used for s3:// paths
	AWSRegion string

	// If set, prometheus metrics are written here (node exporter text file format) on exit
	MetricsTextFile string

	// Where the consistency checker writes its log in verbose mode, empty means console only
	CheckLogPath string

	// Device definition used by converters when the input has none
	DefaultDevicePath string
}

// DefaultConfig - used when no config file is given
func DefaultConfig() ToolConfig {
	return ToolConfig{
		LogLevel:        "INFO",
		EnvironmentName: "local",
	}
}

func (c ToolConfig) GetLogLevel() logger.LogLevel {
	return logger.LogLevelFromString(c.LogLevel)
}

func NewConfigFromFile(configFilePath string) (ToolConfig, error) {
	cfg := DefaultConfig()

	customConfig, err := os.ReadFile(configFilePath)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file at %s", configFilePath)
	}
	return buildConfig(customConfig)
}

func NewConfigFromJsonString(configJson string) (ToolConfig, error) {
	return buildConfig([]byte(configJson))
}

// NewConfigFromEnv - defaults with env var overrides applied, for running without a config file
func NewConfigFromEnv() ToolConfig {
	cfg := DefaultConfig()
	applyEnvOverrides(&cfg)
	return cfg
}

func buildConfig(configJson []byte) (ToolConfig, error) {
	cfg := DefaultConfig()

	err := json.Unmarshal(configJson, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse custom config: %v", err)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Override Config with any values explicitly set in Env Vars (IPASC_CONFIG_*)
// NOTE: For []string slices, pass in a comma-separated string to the corresponding IPASC_CONFIG_ var
func applyEnvOverrides(cfg *ToolConfig) {
	reflection := reflect.ValueOf(cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)
		if val, present := os.LookupEnv(EnvPrefix + fieldName); present {
			switch field.Kind() {
			case reflect.String:
				field.SetString(val)
			case reflect.Slice:
				if field.Type().Elem().Kind() == reflect.String {
					slicedVal := strings.Split(val, ",")
					field.Set(reflect.ValueOf(slicedVal))
				}
			case reflect.Int32, reflect.Int:
				i, err := strconv.Atoi(val)
				if err != nil {
					fmt.Printf("Could not cast value %v%s=%s to Int\n", EnvPrefix, fieldName, val)
					continue
				}
				field.SetInt(int64(i))
			case reflect.Bool:
				b, err := strconv.ParseBool(val)
				if err != nil {
					fmt.Printf("Could not cast value %v%s=%s to Bool\n", EnvPrefix, fieldName, val)
					continue
				}
				field.SetBool(b)
			}
		}
	}
}
