// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contract

import (
	"context"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/logfields"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/orbs-network/scribe/log"
	"sync"
)

const SIMULATED_MAX_WHITELISTED = 10

// SimulatedChain is an in-process chain with the whitelist contract already deployed and a fresh account to
// sign with. It lives as long as the process, nothing is persisted.
type SimulatedChain struct {
	logger  log.Logger
	chainId uint64
	address common.Address

	mu struct {
		sync.Mutex
		backend *FakeWhitelistBackend
		auth    *bind.TransactOpts
	}
}

func NewSimulatedChainConnector(chainId uint64, address common.Address, logger log.Logger) *SimulatedChain {
	return &SimulatedChain{
		logger:  logger.WithTags(log.String("adapter", "ethereum-sim")),
		chainId: chainId,
		address: address,
	}
}

func (s *SimulatedChain) Connect(ctx context.Context) (wallet.RawProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mu.backend == nil {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		s.mu.auth = bind.NewKeyedTransactor(key)
		s.mu.backend = NewFakeWhitelistBackend(s.chainId, s.address, SIMULATED_MAX_WHITELISTED)
		s.logger.Info("simulated chain started", logfields.Account(s.mu.auth.From), logfields.Contract(s.address), logfields.ChainId(s.chainId))
	}

	return wallet.NewRawProvider(s.mu.backend, s.mu.auth), nil
}

// Backend is nil until the first Connect
func (s *SimulatedChain) Backend() *FakeWhitelistBackend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.backend
}
