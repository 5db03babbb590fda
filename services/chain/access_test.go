// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package chain_test

import (
	"context"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/services/chain"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist/contract"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"testing"
)

type goerli struct{}

func (goerli) EthereumChainId() uint64  { return 5 }
func (goerli) EthereumNetwork() string { return "goerli" }

type alerts struct {
	messages []string
}

func (a *alerts) Alert(message string) {
	a.messages = append(a.messages, message)
}

type harness struct {
	backend  *contract.FakeWhitelistBackend
	auth     *bind.TransactOpts
	alerts   *alerts
	registry metric.Registry
	access   *chain.AccessLayer
}

func newHarness(t *testing.T, withAccount bool) *harness {
	h := &harness{
		backend:  contract.NewFakeWhitelistBackend(5, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), 10),
		alerts:   &alerts{},
		registry: metric.NewRegistry(),
	}

	if withAccount {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		h.auth = bind.NewKeyedTransactor(key)
	}

	connector := wallet.NewStaticConnector(h.backend, h.auth)
	h.access = chain.NewAccessLayer(goerli{}, connector, h.alerts, log.DefaultTestingLogger(t), h.registry)
	return h
}

func TestGetProviderOrSigner_ReadOnlyView(t *testing.T) {
	h := newHarness(t, true)

	access, err := h.access.GetProviderOrSigner(context.Background(), false)
	require.NoError(t, err)
	require.False(t, access.CanSign())
	require.Nil(t, access.Signer())

	_, err = access.Address(context.Background())
	require.Equal(t, chain.ErrNoSigner, err)
	require.Empty(t, h.alerts.messages)
}

func TestGetProviderOrSigner_SignerView(t *testing.T) {
	h := newHarness(t, true)

	access, err := h.access.GetProviderOrSigner(context.Background(), true)
	require.NoError(t, err)
	require.True(t, access.CanSign())

	address, err := access.Address(context.Background())
	require.NoError(t, err)
	require.Equal(t, h.auth.From, address)
}

func TestGetProviderOrSigner_SignerWithoutAccountFails(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.access.GetProviderOrSigner(context.Background(), true)
	require.Equal(t, chain.ErrNoSigner, err)
}

func TestGetProviderOrSigner_WrongNetworkAlertsAndFails(t *testing.T) {
	h := newHarness(t, true)
	h.backend.SetChainId(1)

	for _, needSigner := range []bool{true, false} {
		access, err := h.access.GetProviderOrSigner(context.Background(), needSigner)
		require.Nil(t, access)

		mismatch, ok := err.(*chain.NetworkMismatchError)
		require.True(t, ok, "expected a network mismatch error but got %v", err)
		require.EqualValues(t, 5, mismatch.Expected)
		require.EqualValues(t, 1, mismatch.Actual)
	}

	require.Equal(t, []string{"Change network to Goerli", "Change network to Goerli"}, h.alerts.messages)
}

func TestGetProviderOrSigner_ChainIdFailureIsWrapped(t *testing.T) {
	h := newHarness(t, true)
	h.backend.FailChainId(errors.New("connection reset"))

	_, err := h.access.GetProviderOrSigner(context.Background(), false)
	require.Error(t, err)
	require.EqualError(t, errors.Cause(err), "connection reset")
	require.Empty(t, h.alerts.messages)
}

func TestGetProviderOrSigner_RecordsCallLatency(t *testing.T) {
	h := newHarness(t, true)

	access, err := h.access.GetProviderOrSigner(context.Background(), false)
	require.NoError(t, err)

	wl, err := contract.BindContract(access, h.backend.Address())
	require.NoError(t, err)
	_, err = wl.NumAddressesWhitelisted(nil)
	require.NoError(t, err)

	require.Contains(t, h.registry.String(), "Ethereum.CallContract.Latency")
	require.Contains(t, h.registry.String(), "goerli")
}
