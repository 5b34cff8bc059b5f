// Copyright 2023 The webshop project developers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package helper

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var baseLogger *zap.Logger
var logger *zap.SugaredLogger
var loggerLevel zap.AtomicLevel

func CheckError(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

func CheckErrorf(err error, template string, args ...interface{}) {
	if err != nil {
		errFormatStr := fmt.Sprintf("%s: %v", template, err)
		logger.Fatalf(errFormatStr, args...)
	}
}

// LogLevelFromEnv maps the DJANGO_LOGLEVEL names onto zap levels. The harness
// and the Django application it wraps share the same knob.
func LogLevelFromEnv() zapcore.Level {
	switch strings.ToLower(os.Getenv("DJANGO_LOGLEVEL")) {
	case "debug":
		return zapcore.DebugLevel
	case "warning", "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "critical":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// RefreshLogLevel re-reads DJANGO_LOGLEVEL into the live loggers. The
// variable may only appear once an env file has been loaded, well after this
// package's init ran.
func RefreshLogLevel() {
	loggerLevel.SetLevel(LogLevelFromEnv())
}

func GetLogger(names []string) *zap.Logger {
	var newLogger = baseLogger.WithOptions(zap.AddStacktrace(zap.WarnLevel), zap.AddCaller(), zap.AddCallerSkip(1))
	for _, name := range names {
		newLogger = newLogger.Named(name)
	}

	return newLogger
}

func GetSugarLogger(names []string) *zap.SugaredLogger {
	return GetLogger(names).Sugar()
}

func init() {
	config := zap.NewDevelopmentConfig()
	loggerLevel = zap.NewAtomicLevelAt(LogLevelFromEnv())
	config.Level = loggerLevel

	var err error
	baseLogger, err = config.Build()
	if err != nil {
		err = fmt.Errorf("error instantiating logger: %v", err)
		fmt.Println(err)
		os.Exit(1)
	}
	baseLogger = baseLogger.Named("shopctl")

	logger = GetSugarLogger([]string{"helper"})
}
