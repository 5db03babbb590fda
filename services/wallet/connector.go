// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package wallet

import (
	"context"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"math/big"
)

var ErrUserRejected = errors.New("user rejected the wallet connection")
var ErrNoAccount = errors.New("no wallet account configured")

type Config interface {
	EthereumEndpoint() string
	EthereumNetwork() string
	WalletKeystorePath() string
	WalletInjectedPrivateKey() string
	WalletDisableInjectedProvider() bool
}

// EthereumBackend is everything the dapp needs from a node: contract calls, transaction submission,
// receipts for mining and the chain id for the network check.
type EthereumBackend interface {
	bind.ContractBackend
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

type RawProvider interface {
	EthereumBackend
	// nil when no account was authorized
	Account() *bind.TransactOpts
}

type Connector interface {
	Connect(ctx context.Context) (RawProvider, error)
}

type provider struct {
	EthereumBackend
	account *bind.TransactOpts
}

func (p *provider) Account() *bind.TransactOpts {
	return p.account
}

func NewRawProvider(backend EthereumBackend, account *bind.TransactOpts) RawProvider {
	return &provider{EthereumBackend: backend, account: account}
}

type staticConnector struct {
	provider RawProvider
}

// NewStaticConnector hands out an already established provider, for in-process backends
func NewStaticConnector(backend EthereumBackend, account *bind.TransactOpts) Connector {
	return &staticConnector{provider: NewRawProvider(backend, account)}
}

func (c *staticConnector) Connect(ctx context.Context) (RawProvider, error) {
	return c.provider, nil
}
