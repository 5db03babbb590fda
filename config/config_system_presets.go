// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

const GOERLI_CHAIN_ID = 5

// where the in-process simulated chain serves the whitelist contract unless configured otherwise
const SIMULATED_WHITELIST_CONTRACT_ADDRESS = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// all other configs are variations from the production one
func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetString(ETHEREUM_NETWORK, "goerli")
	cfg.SetUint32(ETHEREUM_CHAIN_ID, GOERLI_CHAIN_ID)
	cfg.SetString(ETHEREUM_ENDPOINT, "http://localhost:8545")
	cfg.SetBool(ETHEREUM_SIMULATOR, false)

	// goerli blocks are ~15s apart, a congested mempool can hold a transaction for minutes
	cfg.SetDuration(TRANSACTION_MINED_TIMEOUT, 5*time.Minute)

	// the injected provider is allowed unless explicitly disabled
	cfg.SetBool(WALLET_DISABLE_INJECTED_PROVIDER, false)

	cfg.SetString(HTTP_ADDRESS, ":8080")
	cfg.SetDuration(HTTP_JOIN_RATE_LIMIT_INTERVAL, 2*time.Second)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetBool(LOGGER_FULL_LOG, false)
	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 24*time.Hour)

	return cfg
}

func ForProduction() mutableNodeConfig {
	return defaultProductionConfig()
}

// in-process tests run against fakes, so every wait is short and nothing listens on a fixed port
func ForTests() mutableNodeConfig {
	cfg := defaultProductionConfig()

	cfg.SetString(ETHEREUM_ENDPOINT, "")
	cfg.SetString(WHITELIST_CONTRACT_ADDRESS, SIMULATED_WHITELIST_CONTRACT_ADDRESS)
	cfg.SetDuration(TRANSACTION_MINED_TIMEOUT, 5*time.Second)
	cfg.SetString(HTTP_ADDRESS, "127.0.0.1:0")
	cfg.SetDuration(HTTP_JOIN_RATE_LIMIT_INTERVAL, 1*time.Millisecond)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 0)
	cfg.SetBool(LOGGER_FULL_LOG, true)

	return cfg
}

// EnableSimulator switches to the in-process chain, which needs no endpoint and no deployed contract
func EnableSimulator(cfg mutableNodeConfig) mutableNodeConfig {
	cfg.SetBool(ETHEREUM_SIMULATOR, true)
	return withSimulatedContract(cfg)
}

func withSimulatedContract(cfg mutableNodeConfig) mutableNodeConfig {
	if cfg.EthereumSimulator() && cfg.WhitelistContractAddress() == "" {
		cfg.SetString(WHITELIST_CONTRACT_ADDRESS, SIMULATED_WHITELIST_CONTRACT_ADDRESS)
	}
	return cfg
}
