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
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FileLogger - appends log lines to a file. If Echo is set, every line also
// goes to the wrapped console logger so a verbose run still shows progress
type FileLogger struct {
	file     *os.File
	out      *log.Logger
	logLevel LogLevel
	Echo     ILogger
}

// NewFileLogger - opens (creating if needed) the file at filePath for appending
func NewFileLogger(filePath string, level LogLevel) (*FileLogger, error) {
	if dir := filepath.Dir(filePath); len(dir) > 0 {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &FileLogger{file: f, out: log.New(f, "", log.LstdFlags), logLevel: level}, nil
}

func (l *FileLogger) Printf(level LogLevel, format string, a ...interface{}) {
	if level < l.logLevel {
		return
	}
	l.out.Println(logLevelPrefix[level] + ": " + fmt.Sprintf(format, a...))
	if l.Echo != nil {
		l.Echo.Printf(level, format, a...)
	}
}
func (l *FileLogger) Debugf(format string, a ...interface{}) {
	l.Printf(LogDebug, format, a...)
}
func (l *FileLogger) Infof(format string, a ...interface{}) {
	l.Printf(LogInfo, format, a...)
}
func (l *FileLogger) Errorf(format string, a ...interface{}) {
	l.Printf(LogError, format, a...)
}

func (l *FileLogger) Close() error {
	return l.file.Close()
}

// WriterLogger - writes un-timestamped lines to any writer. Handy for example
// tests where output must be deterministic
type WriterLogger struct {
	W        io.Writer
	LogLevel LogLevel
}

func (l *WriterLogger) Printf(level LogLevel, format string, a ...interface{}) {
	if level < l.LogLevel {
		return
	}
	txt := logLevelPrefix[level] + ": " + fmt.Sprintf(format, a...)
	if !strings.HasSuffix(txt, "\n") {
		txt += "\n"
	}
	io.WriteString(l.W, txt)
}
func (l *WriterLogger) Debugf(format string, a ...interface{}) {
	l.Printf(LogDebug, format, a...)
}
func (l *WriterLogger) Infof(format string, a ...interface{}) {
	l.Printf(LogInfo, format, a...)
}
func (l *WriterLogger) Errorf(format string, a ...interface{}) {
	l.Printf(LogError, format, a...)
}
