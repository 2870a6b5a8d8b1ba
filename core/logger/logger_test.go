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

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Example_writerLogger() {
	l := &WriterLogger{W: os.Stdout, LogLevel: LogInfo}
	l.Debugf("not shown %v", 1)
	l.Infof("detector %v ok", "0000000001")
	l.Errorf("missing %v", "detector_position")

	fmt.Println(LogLevelFromString("ERROR"), LogLevelFromString("nonsense"), LogLevel(7))

	// Output:
	// INFO: detector 0000000001 ok
	// ERROR: missing detector_position
	// ERROR INFO UNKNOWN
}

func Test_FileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "check.log")

	l, err := NewFileLogger(logPath, LogInfo)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	l.Debugf("skipped")
	l.Infof("checked %v elements", 3)
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	txt := string(data)
	if !strings.Contains(txt, "INFO: checked 3 elements") {
		t.Errorf("log file missing info line, got %q", txt)
	}
	if strings.Contains(txt, "skipped") {
		t.Errorf("debug line should have been filtered, got %q", txt)
	}
}
