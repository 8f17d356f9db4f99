// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/dealermonitor/fault"
)

// ParseConfigurationFile - read and execute a Lua file and assign
// the results to a configuration structure
func ParseConfigurationFile(fileName string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	// create the global "arg" table
	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	// execute configuration
	if err := L.DoFile(fileName); err != nil {
		return err
	}

	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.ErrInvalidStructPointer
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(s string) string {
				return s
			},
			TagName: "gluamapper",
		},
	}
	return mapper.Map(table, config)
}
