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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opWrite    = "write"
	opLoad     = "load"
	opReadInfo = "read_info"
)

var (
	ioDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "ipasc_io_duration_seconds",
		Help: "Duration of container reads and writes.",
	}, []string{"operation"})
	ioOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipasc_io_operations_total",
		Help: "Number of container reads and writes, by outcome.",
	}, []string{"operation", "result"})
	ioBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipasc_io_bytes_total",
		Help: "Bytes of container data read or written.",
	}, []string{"operation"})
)

// recordOperation - call with defer at the start of an operation, passing a pointer to its error
func recordOperation(operation string, start time.Time, err *error) {
	ioDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil && *err != nil {
		result = "error"
	}
	ioOperations.WithLabelValues(operation, result).Inc()
}

func recordBytes(operation string, n int) {
	ioBytes.WithLabelValues(operation).Add(float64(n))
}
