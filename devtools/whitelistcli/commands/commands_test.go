// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package commands

import (
	"bytes"
	"github.com/crypto-devs/whitelist-dapp/config"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist/contract"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

const testContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

type cliHarness struct {
	t       *testing.T
	cli     *cli
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	backend *contract.FakeWhitelistBackend
	auth    *bind.TransactOpts
	config  string
}

func newCliHarness(t *testing.T) *cliHarness {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	h := &cliHarness{
		t:       t,
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		backend: contract.NewFakeWhitelistBackend(config.GOERLI_CHAIN_ID, common.HexToAddress(testContractAddress), 10),
		auth:    bind.NewKeyedTransactor(key),
	}
	h.cli = newCli(h.stdout, h.stderr, false)
	h.cli.newLogger = func(verbose bool) log.Logger {
		return log.DefaultTestingLogger(t)
	}
	h.withAccount(h.auth)

	h.config = filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, ioutil.WriteFile(h.config, []byte(`{
  "whitelist-contract-address": "`+testContractAddress+`",
  "transaction-mined-timeout": "3s"
}`), 0600))

	return h
}

func (h *cliHarness) withAccount(auth *bind.TransactOpts) {
	h.cli.newConnector = func(cfg config.NodeConfig, logger log.Logger) wallet.Connector {
		return wallet.NewStaticConnector(h.backend, auth)
	}
}

func (h *cliHarness) run(args ...string) int {
	return h.cli.execute("v1.0.0-test", args)
}

func TestStatus_PrintsWhitelistState(t *testing.T) {
	h := newCliHarness(t)
	h.backend.Whitelist(common.HexToAddress("0x01"), common.HexToAddress("0x02"))

	require.Equal(t, 0, h.run("status", "--config", h.config), "stderr: %s", h.stderr.String())

	out := h.stdout.String()
	require.Contains(t, out, "2 of 10")
	require.Contains(t, out, h.auth.From.Hex())
	require.Contains(t, out, "Join the Whitelist")
}

func TestStatus_WithoutAccountStillReadsTheCount(t *testing.T) {
	h := newCliHarness(t)
	h.withAccount(nil)
	h.backend.Whitelist(common.HexToAddress("0x01"))

	require.Equal(t, 0, h.run("status", "--config", h.config), "stderr: %s", h.stderr.String())

	out := h.stdout.String()
	require.Contains(t, out, "1 of 10")
	require.Contains(t, out, "Connect your Wallet")
}

func TestStatus_WrongNetworkAlertsOnStderrAndFails(t *testing.T) {
	h := newCliHarness(t)
	h.backend.SetChainId(1337)

	require.Equal(t, 1, h.run("status", "--config", h.config))
	require.Contains(t, h.stderr.String(), "ALERT: Change network to Goerli")
	require.Contains(t, h.stdout.String(), "Connect your Wallet")
}

func TestJoin_SubmitsAndPrintsFinalState(t *testing.T) {
	h := newCliHarness(t)
	h.backend.Whitelist(common.HexToAddress("0x01"))

	require.Equal(t, 0, h.run("join", "--config", h.config), "stderr: %s", h.stderr.String())

	require.True(t, h.backend.IsWhitelisted(h.auth.From))
	require.Contains(t, h.stderr.String(), "mined")
	require.Contains(t, h.stdout.String(), "2 of 10")
	require.Contains(t, h.stdout.String(), "Thanks for joining the Whitelist!")
}

func TestJoin_AlreadyJoinedSubmitsNothing(t *testing.T) {
	h := newCliHarness(t)
	h.backend.Whitelist(h.auth.From)

	require.Equal(t, 0, h.run("join", "--config", h.config), "stderr: %s", h.stderr.String())

	require.EqualValues(t, 1, h.backend.Count())
	require.NotContains(t, h.stderr.String(), "joining the whitelist")
	require.Contains(t, h.stdout.String(), "Thanks for joining the Whitelist!")
}

func TestJoin_FailedTransactionExitsWithError(t *testing.T) {
	h := newCliHarness(t)
	h.backend.FailNextMinedTransaction()

	require.Equal(t, 1, h.run("join", "--config", h.config))

	require.False(t, h.backend.IsWhitelisted(h.auth.From))
	require.Contains(t, h.stderr.String(), "failed")
	require.Contains(t, h.stdout.String(), "Join the Whitelist")
}

func TestJoin_WithoutAccountExitsWithError(t *testing.T) {
	h := newCliHarness(t)
	h.withAccount(nil)

	require.Equal(t, 1, h.run("join", "--config", h.config))
	require.Contains(t, h.stderr.String(), "Error:")
	require.EqualValues(t, 0, h.backend.Count())
}

func TestVersion_PrintsVersion(t *testing.T) {
	h := newCliHarness(t)

	require.Equal(t, 0, h.run("version"))
	require.Equal(t, 0, h.run("--version"))
	require.Equal(t, "v1.0.0-test\nv1.0.0-test\n", h.stdout.String())
}

func TestInvalidConfigurationExitsWithError(t *testing.T) {
	h := newCliHarness(t)
	t.Setenv(config.WHITELIST_CONTRACT_ADDRESS, "")

	require.Equal(t, 1, h.run("status"))
	require.Contains(t, h.stderr.String(), "invalid configuration")
}

func TestEnvFileProvidesConfiguration(t *testing.T) {
	h := newCliHarness(t)
	t.Setenv(config.WHITELIST_CONTRACT_ADDRESS, "")
	require.NoError(t, os.Unsetenv(config.WHITELIST_CONTRACT_ADDRESS))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, ioutil.WriteFile(envFile, []byte(config.WHITELIST_CONTRACT_ADDRESS+"="+testContractAddress+"\n"), 0600))

	require.Equal(t, 0, h.run("status", "--env-file", envFile), "stderr: %s", h.stderr.String())
	require.Contains(t, h.stdout.String(), "0 of 10")
}

func TestUnknownCommandExitsWithError(t *testing.T) {
	h := newCliHarness(t)

	require.Equal(t, 1, h.run("leave"))
	require.Contains(t, h.stderr.String(), "unknown command")
}

func TestSimulate_StatusThenJoinRunEndToEnd(t *testing.T) {
	h := newCliHarness(t)
	h.cli.newConnector = defaultConnector
	t.Setenv(config.WHITELIST_CONTRACT_ADDRESS, "")

	require.Equal(t, 0, h.run("status", "--simulate"), "stderr: %s", h.stderr.String())
	require.Contains(t, h.stdout.String(), "0 of 10")
	require.Contains(t, h.stdout.String(), "Join the Whitelist")

	h.stdout.Reset()
	require.Equal(t, 0, h.run("join", "--simulate"), "stderr: %s", h.stderr.String())
	require.Contains(t, h.stderr.String(), "mined")
	require.Contains(t, h.stdout.String(), "1 of 10")
	require.Contains(t, h.stdout.String(), "Thanks for joining the Whitelist!")
}
