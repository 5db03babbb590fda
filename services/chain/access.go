// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package chain

import (
	"context"
	"fmt"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/logfields"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"strings"
	"time"
)

var ErrNoSigner = errors.New("wallet has no authorized account to sign with")

type Config interface {
	EthereumChainId() uint64
	EthereumNetwork() string
}

type Alerter interface {
	Alert(message string)
}

type AlerterFunc func(message string)

func (f AlerterFunc) Alert(message string) {
	f(message)
}

type NetworkMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf("wallet is connected to chain %d, expected chain %d", e.Actual, e.Expected)
}

type AccessObject interface {
	Backend() wallet.RawProvider
	CanSign() bool
	// nil for a read-only view
	Signer() *bind.TransactOpts
	Address(ctx context.Context) (common.Address, error)
}

type metrics struct {
	networkStatus *metric.Text
	callLatency   *metric.Histogram
}

type AccessLayer struct {
	config    Config
	connector wallet.Connector
	alerter   Alerter
	logger    log.Logger
	metrics   *metrics
}

func NewAccessLayer(config Config, connector wallet.Connector, alerter Alerter, logger log.Logger, registry metric.Factory) *AccessLayer {
	return &AccessLayer{
		config:    config,
		connector: connector,
		alerter:   alerter,
		logger:    logger.WithTags(log.String("service", "chain-access")),
		metrics: &metrics{
			networkStatus: registry.NewText("Ethereum.Network.Status", "unknown"),
			callLatency:   registry.NewHistogram("Ethereum.CallContract.Latency", 30*time.Second),
		},
	}
}

func NetworkMismatchAlert(network string) string {
	return "Change network to " + strings.Title(network)
}

// GetProviderOrSigner connects through the shared connector and refuses any chain other than the configured one.
// A fresh access object is built on every call.
func (a *AccessLayer) GetProviderOrSigner(ctx context.Context, needSigner bool) (AccessObject, error) {
	provider, err := a.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}

	chainId, err := provider.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed reading chain id from wallet")
	}

	expected := a.config.EthereumChainId()
	if !chainId.IsUint64() || chainId.Uint64() != expected {
		a.metrics.networkStatus.Update(fmt.Sprintf("mismatch:%s", chainId))
		a.logger.Info("wallet is on the wrong network", trace.LogFieldFrom(ctx), logfields.ChainId(chainId.Uint64()), log.Uint64("expected", expected))
		a.alerter.Alert(NetworkMismatchAlert(a.config.EthereumNetwork()))
		return nil, &NetworkMismatchError{Expected: expected, Actual: chainId.Uint64()}
	}
	a.metrics.networkStatus.Update(a.config.EthereumNetwork())

	access := &accessObject{
		provider: &instrumentedProvider{RawProvider: provider, callLatency: a.metrics.callLatency},
	}

	if needSigner {
		if provider.Account() == nil {
			return nil, ErrNoSigner
		}
		access.signer = provider.Account()
	}

	return access, nil
}

type accessObject struct {
	provider wallet.RawProvider
	signer   *bind.TransactOpts
}

func (o *accessObject) Backend() wallet.RawProvider {
	return o.provider
}

func (o *accessObject) CanSign() bool {
	return o.signer != nil
}

func (o *accessObject) Signer() *bind.TransactOpts {
	return o.signer
}

func (o *accessObject) Address(ctx context.Context) (common.Address, error) {
	if o.signer == nil {
		return common.Address{}, ErrNoSigner
	}
	return o.signer.From, nil
}
