// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

type NodeConfig interface {
	// ethereum
	EthereumEndpoint() string
	EthereumNetwork() string
	EthereumChainId() uint64
	EthereumSimulator() bool
	WhitelistContractAddress() string
	TransactionMinedTimeout() time.Duration

	// wallet
	WalletKeystorePath() string
	WalletInjectedPrivateKey() string
	WalletDisableInjectedProvider() bool

	// http
	HttpAddress() string
	HttpJoinRateLimitInterval() time.Duration

	// instrumentation
	MetricsReportInterval() time.Duration
	LoggerFullLog() bool
	LoggerFileTruncationInterval() time.Duration
}

type mutableNodeConfig interface {
	NodeConfig
	Set(key string, value NodeConfigValue) mutableNodeConfig
	SetDuration(key string, value time.Duration) mutableNodeConfig
	SetUint32(key string, value uint32) mutableNodeConfig
	SetString(key string, value string) mutableNodeConfig
	SetBool(key string, value bool) mutableNodeConfig
	Clone() mutableNodeConfig
}

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

const (
	ETHEREUM_ENDPOINT          = "ETHEREUM_ENDPOINT"
	ETHEREUM_NETWORK           = "ETHEREUM_NETWORK"
	ETHEREUM_CHAIN_ID          = "ETHEREUM_CHAIN_ID"
	ETHEREUM_SIMULATOR         = "ETHEREUM_SIMULATOR"
	WHITELIST_CONTRACT_ADDRESS = "WHITELIST_CONTRACT_ADDRESS"
	TRANSACTION_MINED_TIMEOUT  = "TRANSACTION_MINED_TIMEOUT"

	WALLET_KEYSTORE_PATH             = "WALLET_KEYSTORE_PATH"
	WALLET_INJECTED_PRIVATE_KEY      = "WALLET_INJECTED_PRIVATE_KEY"
	WALLET_DISABLE_INJECTED_PROVIDER = "WALLET_DISABLE_INJECTED_PROVIDER"

	HTTP_ADDRESS                  = "HTTP_ADDRESS"
	HTTP_JOIN_RATE_LIMIT_INTERVAL = "HTTP_JOIN_RATE_LIMIT_INTERVAL"

	METRICS_REPORT_INTERVAL         = "METRICS_REPORT_INTERVAL"
	LOGGER_FULL_LOG                 = "LOGGER_FULL_LOG"
	LOGGER_FILE_TRUNCATION_INTERVAL = "LOGGER_FILE_TRUNCATION_INTERVAL"
)

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) mutableNodeConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) Clone() mutableNodeConfig {
	cloned := &config{
		kv: make(map[string]NodeConfigValue, len(c.kv)),
	}
	for key, value := range c.kv {
		cloned.kv[key] = value
	}
	return cloned
}

func (c *config) EthereumEndpoint() string {
	return c.kv[ETHEREUM_ENDPOINT].StringValue
}

func (c *config) EthereumNetwork() string {
	return c.kv[ETHEREUM_NETWORK].StringValue
}

func (c *config) EthereumChainId() uint64 {
	return uint64(c.kv[ETHEREUM_CHAIN_ID].Uint32Value)
}

func (c *config) EthereumSimulator() bool {
	return c.kv[ETHEREUM_SIMULATOR].BoolValue
}

func (c *config) WhitelistContractAddress() string {
	return c.kv[WHITELIST_CONTRACT_ADDRESS].StringValue
}

func (c *config) TransactionMinedTimeout() time.Duration {
	return c.kv[TRANSACTION_MINED_TIMEOUT].DurationValue
}

func (c *config) WalletKeystorePath() string {
	return c.kv[WALLET_KEYSTORE_PATH].StringValue
}

func (c *config) WalletInjectedPrivateKey() string {
	return c.kv[WALLET_INJECTED_PRIVATE_KEY].StringValue
}

func (c *config) WalletDisableInjectedProvider() bool {
	return c.kv[WALLET_DISABLE_INJECTED_PROVIDER].BoolValue
}

func (c *config) HttpAddress() string {
	return c.kv[HTTP_ADDRESS].StringValue
}

func (c *config) HttpJoinRateLimitInterval() time.Duration {
	return c.kv[HTTP_JOIN_RATE_LIMIT_INTERVAL].DurationValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}

func (c *config) LoggerFileTruncationInterval() time.Duration {
	return c.kv[LOGGER_FILE_TRUNCATION_INTERVAL].DurationValue
}
