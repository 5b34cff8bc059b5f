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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEnvReportsEveryMissingVariable(t *testing.T) {
	env := map[string]string{
		EnvDbUser:     "shop",
		EnvDbPassword: "pw",
		EnvDbName:     "shopdb",
		EnvDbHost:     "db",
		EnvDbPort:     "5432",
		EnvSecretKey:  "", // defined but empty, still missing
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	missing := CheckEnv(lookup)

	assert.Equal(t, []string{EnvSecretKey, EnvAllowedHosts, EnvDebug, EnvLogLevel}, missing)
}

func TestCheckEnvFullEnvironment(t *testing.T) {
	lookup := func(name string) (string, bool) { return "x", true }

	assert.Empty(t, CheckEnv(lookup))
}

func TestDebugEnabled(t *testing.T) {
	var tests = []struct {
		in       string
		expected bool
	}{
		{"True", true},
		{"1", true},
		{"yes", true},
		{" true ", true},
		{"False", false},
		{"0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, DebugEnabled(tt.in))
		})
	}
}
