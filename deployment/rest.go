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
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

// AppClient returns a client for the deployed webshop's HTTP surface.
func AppClient(baseURL string, verbose bool) *resty.Client {
	client := resty.New()
	client.SetHostURL(baseURL)
	client.SetDebug(verbose)
	return client
}

// WaitForApp polls the application root until it answers with anything below
// 500. The wait is bounded, an unreachable app fails the call instead of
// blocking the operator forever.
func WaitForApp(client *resty.Client, attempts uint64, interval time.Duration) error {
	probe := func() error {
		resp, err := client.R().Get("/")
		if err != nil {
			return err
		}
		if resp.StatusCode() >= 500 {
			return fmt.Errorf("application answered %d", resp.StatusCode())
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), attempts)
	if err := backoff.Retry(probe, policy); err != nil {
		return fmt.Errorf("application not ready: %v", err)
	}
	return nil
}
