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

package deployment

import (
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

func TestWaitForAppRecoversFromStartupErrors(t *testing.T) {
	client := AppClient("http://app.local", false)

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	responses := 0
	httpmock.RegisterResponder("GET", "http://app.local/",
		func(req *http.Request) (*http.Response, error) {
			responses++
			if responses < 3 {
				return httpmock.NewStringResponse(502, "bad gateway"), nil
			}
			return httpmock.NewStringResponse(200, "ok"), nil
		},
	)

	err := WaitForApp(client, 5, time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 3, responses)
}

func TestWaitForAppGivesUpAfterAttempts(t *testing.T) {
	client := AppClient("http://app.local", false)

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://app.local/",
		httpmock.NewStringResponder(503, "unavailable"))

	err := WaitForApp(client, 2, time.Millisecond)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
	// 1 attempt + 2 retries
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestWaitForAppAcceptsClientErrors(t *testing.T) {
	// 4xx means Django answered, the app is up even if the route needs auth
	client := AppClient("http://app.local", false)

	httpmock.ActivateNonDefault(client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://app.local/",
		httpmock.NewStringResponder(404, "not found"))

	assert.NoError(t, WaitForApp(client, 1, time.Millisecond))
}
