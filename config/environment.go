// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"os"
	"strconv"
	"time"
)

type valueKind int

const (
	stringKind valueKind = iota
	uint32Kind
	durationKind
	boolKind
)

// keys that may be overridden from the environment, named exactly like the config key
var environmentKeys = map[string]valueKind{
	ETHEREUM_ENDPOINT:                stringKind,
	ETHEREUM_NETWORK:                 stringKind,
	ETHEREUM_CHAIN_ID:                uint32Kind,
	ETHEREUM_SIMULATOR:               boolKind,
	WHITELIST_CONTRACT_ADDRESS:       stringKind,
	TRANSACTION_MINED_TIMEOUT:        durationKind,
	WALLET_KEYSTORE_PATH:             stringKind,
	WALLET_INJECTED_PRIVATE_KEY:      stringKind,
	WALLET_DISABLE_INJECTED_PROVIDER: boolKind,
	HTTP_ADDRESS:                     stringKind,
	HTTP_JOIN_RATE_LIMIT_INTERVAL:    durationKind,
	METRICS_REPORT_INTERVAL:          durationKind,
	LOGGER_FULL_LOG:                  boolKind,
	LOGGER_FILE_TRUNCATION_INTERVAL:  durationKind,
}

type lookupFunc func(key string) (string, bool)

// LoadEnvFiles loads dotenv files into the process environment without overriding variables that are already set.
// A missing default ".env" is not an error.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return nil
		}
		return godotenv.Load()
	}
	return godotenv.Load(paths...)
}

func modifyFromEnvironment(cfg mutableNodeConfig, lookup lookupFunc) error {
	for key, kind := range environmentKeys {
		raw, found := lookup(key)
		if !found {
			continue
		}

		switch kind {
		case stringKind:
			cfg.SetString(key, raw)
		case uint32Kind:
			i, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return errors.Wrapf(err, "could not decode environment variable %s", key)
			}
			cfg.SetUint32(key, uint32(i))
		case durationKind:
			d, err := time.ParseDuration(raw)
			if err != nil {
				return errors.Wrapf(err, "could not decode environment variable %s", key)
			}
			cfg.SetDuration(key, d)
		case boolKind:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return errors.Wrapf(err, "could not decode environment variable %s", key)
			}
			cfg.SetBool(key, b)
		}
	}
	return nil
}
