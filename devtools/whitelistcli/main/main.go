// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package main

import (
	"github.com/crypto-devs/whitelist-dapp/config"
	"github.com/crypto-devs/whitelist-dapp/devtools/whitelistcli/commands"
	"os"
)

// whitelist-cli status [--config=path/to/config.json] [--env-file=.env]
// whitelist-cli join [--simulate] [--verbose]
// whitelist-cli version

func main() {
	os.Exit(commands.Execute(config.GetVersion().String(), os.Args[1:]))
}
