// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"reflect"
	"runtime"
	"strings"
	"time"
)

func Validate(cfg NodeConfig) {
	requireNonEmpty(cfg.EthereumNetwork, "ethereum network must be set")
	requirePositive(cfg.TransactionMinedTimeout, "transaction mined timeout must be positive")

	if cfg.EthereumChainId() == 0 {
		panic("ethereum chain id must be set")
	}

	if !cfg.EthereumSimulator() {
		requireNonEmpty(cfg.EthereumEndpoint, "ethereum endpoint must be set when not running against the simulator")
	}

	if !common.IsHexAddress(cfg.WhitelistContractAddress()) {
		panic(fmt.Sprintf("whitelist contract address is not a valid address: %q", cfg.WhitelistContractAddress()))
	}

	if cfg.WalletInjectedPrivateKey() != "" && cfg.WalletDisableInjectedProvider() {
		panic("an injected private key is configured but the injected provider is disabled")
	}
}

func requireNonEmpty(f func() string, msg string) {
	if f() == "" {
		panic(fmt.Sprintf("%s (%s)", msg, funcName(f)))
	}
}

func requirePositive(f func() time.Duration, msg string) {
	if f() <= 0 {
		panic(fmt.Sprintf("%s (%s=%s)", msg, funcName(f), f()))
	}
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}
