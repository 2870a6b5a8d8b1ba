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

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ipasc/pacfish/config"
	"github.com/ipasc/pacfish/core/awsutil"
	"github.com/ipasc/pacfish/core/dataerror"
	"github.com/ipasc/pacfish/core/devicedef"
	"github.com/ipasc/pacfish/core/export"
	"github.com/ipasc/pacfish/core/fileaccess"
	"github.com/ipasc/pacfish/core/iohandler"
	"github.com/ipasc/pacfish/core/logger"
	"github.com/ipasc/pacfish/core/qualitycheck"
	"github.com/ipasc/pacfish/dataimport/converterSelector"
	"github.com/prometheus/client_golang/prometheus"
)

var Version = "1.0.0"

func main() {
	fmt.Println("==============================")
	fmt.Println("=        IPASC tool          =")
	fmt.Println("==============================")

	var argMode = flag.String("mode", "", "What to do: convert, check, describe, export, device-template")
	var argConfig = flag.String("config", "", "Path to JSON config file. Without one, defaults + IPASC_CONFIG_* env vars are used")
	var argIn = flag.String("in", "", "Input path or s3://bucket/key url")
	var argOut = flag.String("out", "", "Output path or s3://bucket/key url")
	var argVerbose = flag.Bool("verbose", false, "Log every checker finding (to the configured CheckLogPath if set)")
	var argCheck = flag.Bool("check", false, "For convert mode, run the consistency checker on the converted data before saving")
	var argReport = flag.String("report", "", "For check mode, write the findings as JSON to this path or s3 url")
	var argOverwrite = flag.Bool("overwrite", false, "For check mode, replace an existing report")

	flag.Parse()

	cfg := config.NewConfigFromEnv()
	if len(*argConfig) > 0 {
		var err error
		cfg, err = config.NewConfigFromFile(*argConfig)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	ilog := &logger.StdOutLogger{}
	ilog.SetLogLevel(cfg.GetLogLevel())

	if len(cfg.SentryEndpoint) > 0 {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryEndpoint,
			Environment: cfg.EnvironmentName,
			Release:     Version,
		}); err != nil {
			ilog.Errorf("Sentry initialization failed: %v", err)
		}
	}

	var err error
	switch *argMode {
	case "convert":
		err = convert(cfg, *argIn, *argOut, *argCheck, ilog)
	case "check":
		err = check(cfg, *argIn, *argVerbose, *argReport, *argOverwrite, ilog)
	case "describe":
		err = describe(cfg, *argIn, ilog)
	case "export":
		err = exportZip(cfg, *argIn, *argOut, ilog)
	case "device-template":
		err = deviceTemplate(cfg, *argOut, ilog)
	default:
		flag.Usage()
		log.Fatalf("Unknown mode: \"%v\"", *argMode)
	}

	if len(cfg.MetricsTextFile) > 0 {
		if mErr := prometheus.WriteToTextfile(cfg.MetricsTextFile, prometheus.DefaultGatherer); mErr != nil {
			ilog.Errorf("Failed to write metrics to %v: %v", cfg.MetricsTextFile, mErr)
		}
	}

	if err != nil {
		ilog.Errorf("%v failed: %v", *argMode, err)
		if len(cfg.SentryEndpoint) > 0 {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
		}
		os.Exit(1)
	}
}

func convert(cfg config.ToolConfig, in string, out string, runCheck bool, ilog logger.ILogger) error {
	if len(in) <= 0 {
		return errors.New("in not set")
	}

	localFS := &fileaccess.FSAccess{}
	conv, err := converterSelector.SelectDataConverter(localFS, in, cfg.DefaultDevicePath, ilog)
	if err != nil {
		return err
	}

	ilog.Infof("Running converter...")
	data, err := conv.GeneratePAData(in, ilog)
	if err != nil {
		return fmt.Errorf("Import failed: %v", err)
	}

	if runCheck {
		report := qualitycheck.CheckPADataWithLogger(data, ilog)
		if !report.Passed {
			ilog.Errorf("Converted data has %v problem(s), saving anyway", len(report.Findings))
		}
	}

	if len(out) <= 0 {
		inDir := in
		if info, err := os.Stat(in); err == nil && !info.IsDir() {
			inDir = filepath.Dir(in)
		}
		out = filepath.Join(inDir, iohandler.DefaultFileName(data))
	}

	h, bucket, key, err := iohandler.MakeIOHandlerForPath(out, cfg.AWSRegion, ilog)
	if err != nil {
		return err
	}
	if err := h.WriteData(bucket, key, data); err != nil {
		return err
	}

	ilog.Infof("Conversion complete, wrote: %v", out)
	return nil
}

func check(cfg config.ToolConfig, in string, verbose bool, reportPath string, overwrite bool, ilog logger.ILogger) error {
	h, bucket, key, err := iohandler.MakeIOHandlerForPath(in, cfg.AWSRegion, ilog)
	if err != nil {
		return err
	}
	data, err := h.LoadData(bucket, key)
	if err != nil {
		return err
	}

	report, err := qualitycheck.CheckPAData(data, verbose, cfg.CheckLogPath)
	if err != nil {
		return err
	}
	fmt.Println(report)

	if len(reportPath) > 0 {
		fs, bucket, key, err := fileAccessForPath(reportPath, cfg.AWSRegion)
		if err != nil {
			return err
		}
		if err := qualitycheck.WriteReportFile(fs, bucket, key, qualitycheck.MakeReportFile(in, report), overwrite); err != nil {
			return err
		}
		ilog.Infof("Wrote report: %v", reportPath)
	}

	if !report.Passed {
		return fmt.Errorf("%v did not pass the consistency check", in)
	}
	return nil
}

func describe(cfg config.ToolConfig, in string, ilog logger.ILogger) error {
	h, bucket, key, err := iohandler.MakeIOHandlerForPath(in, cfg.AWSRegion, ilog)
	if err != nil {
		return err
	}
	info, err := h.ReadFileInfo(bucket, key)
	if err != nil {
		return err
	}
	fmt.Println(info)
	return nil
}

func exportZip(cfg config.ToolConfig, in string, out string, ilog logger.ILogger) error {
	if len(out) <= 0 {
		return errors.New("out not set")
	}

	h, bucket, key, err := iohandler.MakeIOHandlerForPath(in, cfg.AWSRegion, ilog)
	if err != nil {
		return err
	}
	data, err := h.LoadData(bucket, key)
	if err != nil {
		return err
	}

	zipped, err := export.MakeExportZip(data, time.Now())
	if err != nil {
		return err
	}

	fs, outBucket, outKey, err := fileAccessForPath(out, cfg.AWSRegion)
	if err != nil {
		return err
	}
	if err := fs.WriteObject(outBucket, outKey, zipped); err != nil {
		return dataerror.MakeWriteFailedError(err)
	}

	ilog.Infof("Wrote %v bytes to %v", len(zipped), out)
	return nil
}

func deviceTemplate(cfg config.ToolConfig, out string, ilog logger.ILogger) error {
	if len(out) <= 0 {
		return devicedef.WriteDeviceDefinitionTemplate(os.Stdout)
	}

	var buf bytes.Buffer
	if err := devicedef.WriteDeviceDefinitionTemplate(&buf); err != nil {
		return err
	}

	fs, bucket, key, err := fileAccessForPath(out, cfg.AWSRegion)
	if err != nil {
		return err
	}
	if err := fs.WriteObject(bucket, key, buf.Bytes()); err != nil {
		return dataerror.MakeWriteFailedError(err)
	}

	ilog.Infof("Wrote device definition template to %v", out)
	return nil
}

func fileAccessForPath(path string, awsRegion string) (fileaccess.FileAccess, string, string, error) {
	if !fileaccess.IsS3Url(path) {
		return &fileaccess.FSAccess{}, "", path, nil
	}

	bucket, err := fileaccess.GetBucketFromS3Url(path)
	if err != nil {
		return nil, "", "", err
	}
	key, err := fileaccess.GetPathFromS3Url(path)
	if err != nil {
		return nil, "", "", err
	}

	sess, err := awsutil.GetSessionWithRegion(awsRegion)
	if err != nil {
		return nil, "", "", err
	}
	s3, err := awsutil.GetS3(sess)
	if err != nil {
		return nil, "", "", err
	}
	return fileaccess.MakeS3Access(s3), bucket, key, nil
}
