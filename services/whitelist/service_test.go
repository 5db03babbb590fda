// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package whitelist

import (
	"context"
	"github.com/crypto-devs/whitelist-dapp/config"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/services/chain"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist/contract"
	"github.com/crypto-devs/whitelist-dapp/test"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type harness struct {
	backend  *contract.FakeWhitelistBackend
	auth     *bind.TransactOpts
	registry metric.Registry
	service  *Service

	mu     sync.Mutex
	alerts []string
}

type harnessOption func(cfg Config, connector wallet.Connector) (Config, wallet.Connector)

func withMinedTimeout(d time.Duration) harnessOption {
	return func(cfg Config, connector wallet.Connector) (Config, wallet.Connector) {
		return config.ForTests().SetDuration(config.TRANSACTION_MINED_TIMEOUT, d), connector
	}
}

func withConnector(c wallet.Connector) harnessOption {
	return func(cfg Config, connector wallet.Connector) (Config, wallet.Connector) {
		return cfg, c
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	cfg := config.ForTests()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	h := &harness{
		backend:  contract.NewFakeWhitelistBackend(config.GOERLI_CHAIN_ID, common.HexToAddress(cfg.WhitelistContractAddress()), 10),
		auth:     bind.NewKeyedTransactor(key),
		registry: metric.NewRegistry(),
	}

	var serviceConfig Config = cfg
	var connector = wallet.NewStaticConnector(h.backend, h.auth)
	for _, opt := range opts {
		serviceConfig, connector = opt(serviceConfig, connector)
	}

	h.service = NewService(serviceConfig, connector, chain.AlerterFunc(h.alert), log.DefaultTestingLogger(t), h.registry)
	return h
}

func (h *harness) alert(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, message)
}

func (h *harness) alertCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.alerts)
}

type rejectingConnector struct{}

func (rejectingConnector) Connect(ctx context.Context) (wallet.RawProvider, error) {
	return nil, errors.Wrap(wallet.ErrUserRejected, "passphrase prompt declined")
}

func TestInitialize_ConnectsAndRefreshes(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.Whitelist(common.HexToAddress("0x01"), common.HexToAddress("0x02"))

		require.NoError(t, h.service.Initialize(ctx))

		test.RequireCmpEqual(t, State{
			WalletConnected:     true,
			NumberOfWhitelisted: 2,
			MaxWhitelisted:      10,
			Account:             h.auth.From.Hex(),
		}, h.service.State())
		require.Equal(t, ACTION_JOIN, RenderButton(h.service.State()).Action)
	})
}

func TestInitialize_RunsConnectOnlyOnce(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.SetChainId(1)

		err := h.service.Initialize(ctx)
		require.True(t, IsNetworkMismatch(err))

		h.backend.SetChainId(config.GOERLI_CHAIN_ID)
		require.Equal(t, err, h.service.Initialize(ctx), "second initialize should not reconnect")
		require.Equal(t, 1, h.alertCount())
		require.False(t, h.service.State().WalletConnected)
	})
}

func TestConnectWallet_AlreadyWhitelistedAccount(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.Whitelist(h.auth.From)

		require.NoError(t, h.service.ConnectWallet(ctx))

		state := h.service.State()
		require.True(t, state.JoinedWhitelist)
		require.EqualValues(t, 1, state.NumberOfWhitelisted)
		require.Equal(t, "Thanks for joining the Whitelist!", RenderButton(state).Label)
	})
}

func TestConnectWallet_WrongNetworkAlertsAndLeavesStateUnchanged(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.SetChainId(1)

		err := h.service.ConnectWallet(ctx)
		require.True(t, IsNetworkMismatch(err))
		require.False(t, IsRemoteCallFailure(err))

		state := h.service.State()
		require.False(t, state.WalletConnected)
		require.Equal(t, "Change network to Goerli", state.Alert)
		require.Equal(t, 1, h.alertCount())
	})
}

func TestConnectWallet_AlertClearsOnceNetworkIsRight(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.SetChainId(1)
		require.Error(t, h.service.ConnectWallet(ctx))

		h.backend.SetChainId(config.GOERLI_CHAIN_ID)
		require.NoError(t, h.service.ConnectWallet(ctx))
		require.Empty(t, h.service.State().Alert)
		require.True(t, h.service.State().WalletConnected)
	})
}

func TestConnectWallet_UserRejection(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t, withConnector(rejectingConnector{}))

		err := h.service.ConnectWallet(ctx)
		require.True(t, IsUserRejection(err))
		require.False(t, IsRemoteCallFailure(err))
		require.False(t, h.service.State().WalletConnected)
		require.NotEmpty(t, h.service.State().LastError)
	})
}

func TestConnectWallet_ReadOnlyWalletCannotConnectButReadsCount(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.Whitelist(common.HexToAddress("0x01"), common.HexToAddress("0x02"))
		h.service = NewService(config.ForTests(), wallet.NewStaticConnector(h.backend, nil), nil, log.DefaultTestingLogger(t), h.registry)

		err := h.service.ConnectWallet(ctx)
		require.Equal(t, chain.ErrNoSigner, errors.Cause(err))

		state := h.service.State()
		require.False(t, state.WalletConnected)
		require.EqualValues(t, 2, state.NumberOfWhitelisted)
		require.EqualValues(t, 10, state.MaxWhitelisted)
		require.Equal(t, "Connect your Wallet", RenderButton(state).Label)
	})
}

func TestConnectWallet_ReadOnlyWalletReportsCountFailureToo(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.FailCalls(errors.New("header not found"))
		h.service = NewService(config.ForTests(), wallet.NewStaticConnector(h.backend, nil), nil, log.DefaultTestingLogger(t), h.registry)

		err := h.service.ConnectWallet(ctx)
		require.Error(t, err)
		require.NotEqual(t, chain.ErrNoSigner, errors.Cause(err), "a failed count read must not look like a plain read-only wallet")
		require.True(t, IsRemoteCallFailure(err))
		require.EqualValues(t, 0, h.service.State().NumberOfWhitelisted)
	})
}

func TestConnectWallet_SuccessClearsPreviousError(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.SetChainId(1)
		require.Error(t, h.service.ConnectWallet(ctx))
		require.NotEmpty(t, h.service.State().LastError)

		h.backend.SetChainId(config.GOERLI_CHAIN_ID)
		require.NoError(t, h.service.ConnectWallet(ctx))

		state := h.service.State()
		require.Empty(t, state.LastError)
		require.Empty(t, state.Alert)
		require.True(t, state.WalletConnected)
	})
}

func TestGetNumberOfWhitelisted_SuccessClearsPreviousError(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.FailCalls(errors.New("header not found"))
		require.Error(t, h.service.GetNumberOfWhitelisted(ctx))
		require.Contains(t, h.service.State().LastError, "header not found")

		h.backend.FailCalls(nil)
		require.NoError(t, h.service.GetNumberOfWhitelisted(ctx))
		require.Empty(t, h.service.State().LastError)
	})
}

func TestConnectWallet_RefreshFailuresKeepConnection(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.FailCalls(errors.New("header not found"))

		err := h.service.ConnectWallet(ctx)
		refreshErr, ok := err.(*RefreshError)
		require.True(t, ok, "expected a refresh error but got %v", err)
		require.Len(t, refreshErr.Errors(), 2)
		require.True(t, IsRemoteCallFailure(err))
		require.True(t, h.service.State().WalletConnected)
	})
}

func TestGetNumberOfWhitelisted_WorksWithoutConnecting(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.Whitelist(common.HexToAddress("0x01"))

		require.NoError(t, h.service.GetNumberOfWhitelisted(ctx))
		require.EqualValues(t, 1, h.service.State().NumberOfWhitelisted)
		require.False(t, h.service.State().WalletConnected)
	})
}

func TestGetNumberOfWhitelisted_FailureLeavesCountUnchanged(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.Whitelist(common.HexToAddress("0x01"))
		require.NoError(t, h.service.GetNumberOfWhitelisted(ctx))

		h.backend.Whitelist(common.HexToAddress("0x02"))
		h.backend.FailCalls(errors.New("connection refused"))

		err := h.service.GetNumberOfWhitelisted(ctx)
		require.True(t, IsRemoteCallFailure(err))
		require.EqualValues(t, 1, h.service.State().NumberOfWhitelisted)
	})
}

func TestAddAddressToWhitelist_JoinsAndRefreshesCount(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.Whitelist(common.HexToAddress("0x01"))
		require.NoError(t, h.service.ConnectWallet(ctx))

		require.NoError(t, h.service.AddAddressToWhitelist(ctx))

		state := h.service.State()
		require.True(t, state.JoinedWhitelist)
		require.False(t, state.Loading)
		require.EqualValues(t, 2, state.NumberOfWhitelisted)
		require.True(t, h.backend.IsWhitelisted(h.auth.From))
		require.Contains(t, h.registry.String(), "Whitelist.Join.MinedLatency")
	})
}

func TestAddAddressToWhitelist_RequiresConnectedWallet(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)

		require.Equal(t, ErrNotConnected, h.service.AddAddressToWhitelist(ctx))
		require.Zero(t, h.backend.Count())
	})
}

func TestAddAddressToWhitelist_RefusesSecondJoin(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		h.backend.Whitelist(h.auth.From)
		require.NoError(t, h.service.ConnectWallet(ctx))

		require.Equal(t, ErrAlreadyJoined, h.service.AddAddressToWhitelist(ctx))
		require.EqualValues(t, 1, h.backend.Count())
	})
}

func TestAddAddressToWhitelist_FailedTransactionResetsLoading(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		require.NoError(t, h.service.ConnectWallet(ctx))
		h.backend.FailNextMinedTransaction()

		err := h.service.AddAddressToWhitelist(ctx)
		require.IsType(t, &TransactionFailedError{}, errors.Cause(err))

		state := h.service.State()
		require.False(t, state.Loading, "loading should be reset after a failed join")
		require.False(t, state.JoinedWhitelist)
		require.Equal(t, ACTION_JOIN, RenderButton(state).Action)
	})
}

func TestAddAddressToWhitelist_RevertedEstimateIsRemoteFailure(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		require.NoError(t, h.service.ConnectWallet(ctx))
		// another session joined with the same account after we connected
		h.backend.Whitelist(h.auth.From)

		err := h.service.AddAddressToWhitelist(ctx)
		require.True(t, IsRemoteCallFailure(err))
		require.False(t, h.service.State().Loading)
	})
}

func TestAddAddressToWhitelist_ShowsLoadingWhileMiningAndRefusesReentry(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t)
		require.NoError(t, h.service.ConnectWallet(ctx))
		h.backend.HoldMining()

		joined := make(chan error, 1)
		go func() {
			joined <- h.service.AddAddressToWhitelist(ctx)
		}()

		require.True(t, test.Eventually(test.EVENTUALLY_MINED_TIMEOUT, func() bool {
			return h.service.State().Loading
		}), "loading should be set once the transaction is submitted")
		require.Equal(t, "Loading...", RenderButton(h.service.State()).Label)

		require.Equal(t, ErrJoinInProgress, h.service.AddAddressToWhitelist(ctx))
		require.Equal(t, 1, h.backend.PendingTransactions())

		h.backend.ReleaseMining()

		select {
		case err := <-joined:
			require.NoError(t, err)
		case <-time.After(test.EVENTUALLY_MINED_TIMEOUT):
			t.Fatal("join did not complete after mining was released")
		}

		state := h.service.State()
		require.True(t, state.JoinedWhitelist)
		require.False(t, state.Loading)
		require.EqualValues(t, 1, state.NumberOfWhitelisted)
	})
}

func TestAddAddressToWhitelist_MiningTimeoutResetsLoading(t *testing.T) {
	test.WithContext(t, func(ctx context.Context) {
		h := newHarness(t, withMinedTimeout(50*time.Millisecond))
		require.NoError(t, h.service.ConnectWallet(ctx))
		h.backend.HoldMining()

		err := h.service.AddAddressToWhitelist(ctx)
		require.Error(t, err)
		require.Equal(t, context.DeadlineExceeded, errors.Cause(err))

		state := h.service.State()
		require.False(t, state.Loading)
		require.False(t, state.JoinedWhitelist)
	})
}
