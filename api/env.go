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

package api

import (
	"strings"
)

// The environment variables every deployment has to define before any
// container starts. The database container derives its POSTGRES_* variables
// from the first three, the Django settings read all of them.
const (
	EnvDbUser       = "DJANGO_DB_USER"
	EnvDbPassword   = "DJANGO_DB_PASSWORD"
	EnvDbName       = "DJANGO_DB_NAME"
	EnvDbHost       = "DJANGO_DB_HOST"
	EnvDbPort       = "DJANGO_DB_PORT"
	EnvSecretKey    = "DJANGO_SECRET_KEY"
	EnvAllowedHosts = "DJANGO_ALLOWED_HOSTS"
	EnvDebug        = "DJANGO_DEBUG"
	EnvLogLevel     = "DJANGO_LOGLEVEL"
)

func RequiredEnv() []string {
	return []string{
		EnvDbUser,
		EnvDbPassword,
		EnvDbName,
		EnvDbHost,
		EnvDbPort,
		EnvSecretKey,
		EnvAllowedHosts,
		EnvDebug,
		EnvLogLevel,
	}
}

// CheckEnv returns every required variable the given lookup cannot resolve.
// An empty value counts as missing, docker would silently pass it through.
func CheckEnv(lookup func(string) (string, bool)) []string {
	var missing []string
	for _, name := range RequiredEnv() {
		if value, ok := lookup(name); !ok || value == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// DebugEnabled mirrors the truthiness rules of the Django settings module:
// "true", "1" and "yes" enable debug mode, anything else disables it.
func DebugEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
