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

package config

import (
	"fmt"
	"testing"

	"github.com/ipasc/pacfish/core/logger"
)

func Test_InitializeConfigWithFile(t *testing.T) {
	want := "./devices/bench.yaml"
	cfg, err := NewConfigFromFile("./example_config.json")
	if err != nil {
		t.Fatalf("Error initializing config: %v", err)
	}
	if cfg.DefaultDevicePath != want {
		t.Errorf("cfg.DefaultDevicePath got %q; want: %q", cfg.DefaultDevicePath, want)
	}
	if cfg.GetLogLevel() != logger.LogDebug {
		t.Errorf("cfg.GetLogLevel got %v", cfg.GetLogLevel())
	}
}

func Test_InitializeConfigWithJsonString(t *testing.T) {
	want := "https://sentry.example.com/1"
	cfg, err := NewConfigFromJsonString(fmt.Sprintf(`{"SentryEndpoint": "%s"}`, want))
	if err != nil {
		t.Fatalf("Error initializing config: %v", err)
	}
	if cfg.SentryEndpoint != want {
		t.Errorf("cfg.SentryEndpoint got %q; want: %q", cfg.SentryEndpoint, want)
	}

	// Defaults survive for anything not in the JSON
	if cfg.LogLevel != "INFO" || cfg.EnvironmentName != "local" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func Test_OverrideConfigWithEnvVars(t *testing.T) {
	want := "ENV-SET-Region"
	t.Setenv("IPASC_CONFIG_AWSRegion", want)
	cfg, err := NewConfigFromFile("./example_config.json")
	if err != nil {
		t.Fatalf("Error initializing config: %v", err)
	}
	if cfg.AWSRegion != want {
		t.Errorf("cfg.AWSRegion got %q; want: %q", cfg.AWSRegion, want)
	}

	t.Setenv("IPASC_CONFIG_MetricsTextFile", "/tmp/ipasc.prom")
	cfg = NewConfigFromEnv()
	if cfg.MetricsTextFile != "/tmp/ipasc.prom" || cfg.AWSRegion != want {
		t.Errorf("env only config: %+v", cfg)
	}
}

func Test_BadConfig(t *testing.T) {
	_, err := NewConfigFromFile("./nothere.json")
	if err == nil {
		t.Errorf("expected error for missing file")
	}
	_, err = NewConfigFromJsonString("{")
	if err == nil {
		t.Errorf("expected error for bad JSON")
	}
}
