// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package whitelist

import (
	"context"
	"github.com/crypto-devs/whitelist-dapp/instrumentation"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/logfields"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/crypto-devs/whitelist-dapp/services/chain"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist/contract"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/hashicorp/go-multierror"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"strconv"
	"sync"
	"time"
)

var LogTag = log.Service("whitelist")

type Config interface {
	chain.Config
	WhitelistContractAddress() string
	TransactionMinedTimeout() time.Duration
}

type metrics struct {
	count           *metric.Gauge
	max             *metric.Gauge
	walletConnected *metric.Gauge
	joined          *metric.Gauge
	failures        *metric.Gauge
	joinSubmitted   *metric.Rate
	minedLatency    *metric.Histogram
}

func newMetrics(factory metric.Factory) *metrics {
	return &metrics{
		count:           factory.NewGauge("Whitelist.Count"),
		max:             factory.NewGauge("Whitelist.Max"),
		walletConnected: factory.NewGauge("Whitelist.WalletConnected"),
		joined:          factory.NewGauge("Whitelist.Joined"),
		failures:        factory.NewGauge("Whitelist.Operation.Failures"),
		joinSubmitted:   factory.NewRate("Whitelist.Join.Submitted.Rate"),
		minedLatency:    factory.NewHistogram("Whitelist.Join.MinedLatency", 30*time.Minute),
	}
}

type Service struct {
	config          Config
	contractAddress common.Address
	access          *chain.AccessLayer
	alerter         chain.Alerter
	logger          log.Logger
	metrics         *metrics

	initOnce sync.Once
	initErr  error

	mu struct {
		sync.RWMutex
		state   State
		joining bool
	}
}

// NewService owns its chain access layer; the connector is shared with whoever else needs the wallet.
// alerter may be nil, alerts are always kept in the state.
func NewService(config Config, connector wallet.Connector, alerter chain.Alerter, logger log.Logger, registry metric.Factory) *Service {
	s := &Service{
		config:          config,
		contractAddress: common.HexToAddress(config.WhitelistContractAddress()),
		alerter:         alerter,
		logger:          logger.WithTags(LogTag),
		metrics:         newMetrics(registry),
	}
	s.access = chain.NewAccessLayer(config, connector, s, logger, registry)
	return s
}

func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mu.state
}

func (s *Service) Alert(message string) {
	s.mutate(func(state *State) {
		state.Alert = message
	})
	if s.alerter != nil {
		s.alerter.Alert(message)
	}
}

// Initialize connects the wallet once per service, later calls return the first outcome
func (s *Service) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.ConnectWallet(ctx)
	})
	return s.initErr
}

func (s *Service) ConnectWallet(ctx context.Context) error {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	access, err := s.getAccess(ctx, true)
	if err != nil {
		if errors.Cause(err) == chain.ErrNoSigner {
			// a read-only wallet still shows how many joined
			if countErr := s.GetNumberOfWhitelisted(ctx); countErr != nil {
				err = multierror.Append(err, countErr)
			}
		}
		return s.fail(logger, "failed connecting wallet", err)
	}

	address, err := access.Address(ctx)
	if err != nil {
		return s.fail(logger, "failed connecting wallet", err)
	}

	s.mutate(func(state *State) {
		state.WalletConnected = true
		state.Account = address.Hex()
	})
	s.metrics.walletConnected.UpdateBool(true)
	logger.Info("wallet connected", logfields.Account(address))

	// refreshes run one after the other, nothing re-triggers them on later state changes
	var refreshErrors *multierror.Error
	if err := s.CheckIfAddressInWhitelist(ctx); err != nil {
		refreshErrors = multierror.Append(refreshErrors, err)
	}
	if err := s.GetNumberOfWhitelisted(ctx); err != nil {
		refreshErrors = multierror.Append(refreshErrors, err)
	}

	if refreshErrors.ErrorOrNil() != nil {
		return &RefreshError{errs: refreshErrors}
	}
	return nil
}

func (s *Service) CheckIfAddressInWhitelist(ctx context.Context) error {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	access, err := s.getAccess(ctx, true)
	if err != nil {
		return s.fail(logger, "failed checking whitelist membership", err)
	}

	address, err := access.Address(ctx)
	if err != nil {
		return s.fail(logger, "failed checking whitelist membership", err)
	}

	whitelist, err := contract.BindContract(access, s.contractAddress)
	if err != nil {
		return s.fail(logger, "failed checking whitelist membership", err)
	}

	joined, err := whitelist.WhitelistedAddresses(&bind.CallOpts{Context: ctx, From: address}, address)
	if err != nil {
		return s.fail(logger, "failed checking whitelist membership", errors.Wrap(err, "whitelistedAddresses call failed"))
	}

	s.mutate(func(state *State) {
		state.JoinedWhitelist = joined
	})
	s.metrics.joined.UpdateBool(joined)
	logger.Info("whitelist membership checked", logfields.Account(address), log.String("joined", strconv.FormatBool(joined)))
	return nil
}

func (s *Service) GetNumberOfWhitelisted(ctx context.Context) error {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	access, err := s.getAccess(ctx, false)
	if err != nil {
		return s.fail(logger, "failed reading number of whitelisted addresses", err)
	}

	whitelist, err := contract.BindContract(access, s.contractAddress)
	if err != nil {
		return s.fail(logger, "failed reading number of whitelisted addresses", err)
	}

	session := &contract.WhitelistSession{
		Contract: whitelist,
		CallOpts: bind.CallOpts{Context: ctx},
	}

	count, err := session.NumAddressesWhitelisted()
	if err != nil {
		return s.fail(logger, "failed reading number of whitelisted addresses", errors.Wrap(err, "numAddressesWhitelisted call failed"))
	}

	max, err := session.MaxWhitelistedAddresses()
	if err != nil {
		return s.fail(logger, "failed reading number of whitelisted addresses", errors.Wrap(err, "maxWhitelistedAddresses call failed"))
	}

	s.mutate(func(state *State) {
		state.NumberOfWhitelisted = uint64(count)
		state.MaxWhitelisted = uint64(max)
	})
	s.metrics.count.UpdateUint64(uint64(count))
	s.metrics.max.UpdateUint64(uint64(max))
	logger.Info("number of whitelisted addresses read", log.Uint64("count", uint64(count)), log.Uint64("max", uint64(max)))
	return nil
}

func (s *Service) AddAddressToWhitelist(ctx context.Context) error {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), log.String("flow", instrumentation.TransactionFlowTag))

	if err := s.beginJoin(); err != nil {
		return s.fail(logger, "join refused", err)
	}
	defer s.endJoin()

	access, err := s.getAccess(ctx, true)
	if err != nil {
		return s.fail(logger, "failed joining whitelist", err)
	}

	whitelist, err := contract.BindContract(access, s.contractAddress)
	if err != nil {
		return s.fail(logger, "failed joining whitelist", err)
	}

	opts := *access.Signer()
	opts.Context = ctx
	tx, err := whitelist.AddAddressToWhitelist(&opts)
	if err != nil {
		return s.fail(logger, "failed joining whitelist", errors.Wrap(err, "addAddressToWhitelist transaction was not sent"))
	}

	s.mutate(func(state *State) {
		state.Loading = true
	})
	s.metrics.joinSubmitted.Measure(1)
	logger.Info("join transaction submitted", logfields.Account(opts.From), logfields.Transaction(tx.Hash()))

	receipt, err := s.waitMined(ctx, access.Backend(), tx)
	if err != nil {
		return s.fail(logger, "failed joining whitelist", err)
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return s.fail(logger, "failed joining whitelist", &TransactionFailedError{TxHash: tx.Hash()})
	}

	s.mutate(func(state *State) {
		state.Loading = false
		state.JoinedWhitelist = true
	})
	s.metrics.joined.UpdateBool(true)
	logger.Info("joined whitelist", logfields.Account(opts.From), logfields.Transaction(tx.Hash()), log.Uint64("block", receipt.BlockNumber.Uint64()))

	if err := s.GetNumberOfWhitelisted(ctx); err != nil {
		return &RefreshError{errs: multierror.Append(nil, err)}
	}
	return nil
}

func (s *Service) waitMined(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
	start := time.Now()
	minedCtx, cancel := context.WithTimeout(ctx, s.config.TransactionMinedTimeout())
	defer cancel()

	receipt, err := bind.WaitMined(minedCtx, backend, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s was not mined within %s", tx.Hash().Hex(), s.config.TransactionMinedTimeout())
	}

	s.metrics.minedLatency.RecordSince(start)
	return receipt, nil
}

func (s *Service) beginJoin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.mu.state.WalletConnected:
		return ErrNotConnected
	case s.mu.state.JoinedWhitelist:
		return ErrAlreadyJoined
	case s.mu.joining:
		return ErrJoinInProgress
	}

	s.mu.joining = true
	return nil
}

// loading is cleared on every exit path, including failures
func (s *Service) endJoin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mu.joining = false
	s.mu.state.Loading = false
}

func (s *Service) getAccess(ctx context.Context, needSigner bool) (chain.AccessObject, error) {
	access, err := s.access.GetProviderOrSigner(ctx, needSigner)
	if err != nil {
		return nil, err
	}

	s.mutate(func(state *State) {
		state.Alert = ""
		state.LastError = ""
	})
	return access, nil
}

// failures are reported to the caller, the log keeps them at info since most are user or network driven
func (s *Service) fail(logger log.Logger, message string, err error) error {
	s.mutate(func(state *State) {
		state.LastError = err.Error()
	})
	s.metrics.failures.Inc()
	logger.Info(message, log.Error(err))
	return err
}

func (s *Service) mutate(f func(state *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.mu.state)
}
