// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"io/ioutil"
)

// parseJSONFile - the appsettings.json layout
func parseJSONFile(fileName string, config interface{}) error {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}
	return json.Unmarshal(data, config)
}
