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

	"github.com/spf13/viper"
)

var CfgFile string

// CurrentConfig looks a key up in the section of the global config file
// belonging to the currently selected deployment environment.
func CurrentConfig(key string) string {
	env := viper.GetString("env")
	output := viper.GetString(fmt.Sprintf("%s.%s", env, key))
	return output
}
