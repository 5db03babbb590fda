// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package commands

import (
	"fmt"
	"github.com/crypto-devs/whitelist-dapp/config"
	"github.com/crypto-devs/whitelist-dapp/instrumentation"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/services/chain"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist/contract"
	"github.com/ethereum/go-ethereum/common"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
	"io"
	"os"
)

type options struct {
	configFiles []string
	envFiles    []string
	simulate    bool
	verbose     bool
}

type cli struct {
	opts        options
	stdout      io.Writer
	stderr      io.Writer
	interactive bool

	newLogger    func(verbose bool) log.Logger
	newConnector func(cfg config.NodeConfig, logger log.Logger) wallet.Connector
}

func Execute(version string, args []string) int {
	return newCli(os.Stdout, os.Stderr, terminal.IsTerminal(int(os.Stderr.Fd()))).execute(version, args)
}

func newCli(stdout, stderr io.Writer, interactive bool) *cli {
	return &cli{
		stdout:       stdout,
		stderr:       stderr,
		interactive:  interactive,
		newLogger:    instrumentation.GetCliLogger,
		newConnector: defaultConnector,
	}
}

func defaultConnector(cfg config.NodeConfig, logger log.Logger) wallet.Connector {
	if cfg.EthereumSimulator() {
		return contract.NewSimulatedChainConnector(cfg.EthereumChainId(), common.HexToAddress(cfg.WhitelistContractAddress()), logger)
	}
	return wallet.NewRpcConnector(cfg, wallet.NewTerminalPassphrasePrompt(), logger)
}

func (c *cli) execute(version string, args []string) int {
	root := c.rootCmd(version)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(c.stderr, "Error:", err)
		return 1
	}
	return 0
}

func (c *cli) rootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "whitelist-cli",
		Short: "Join the whitelist contract from the terminal",
		Long: `whitelist-cli connects a wallet to the whitelist contract on Goerli,
shows how many addresses have joined and submits the join transaction.

The wallet is configured through ETHEREUM_ENDPOINT together with either
WALLET_INJECTED_PRIVATE_KEY or WALLET_KEYSTORE_PATH.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringArrayVar(&c.opts.configFiles, "config", nil, "path/to/config.json, may be repeated")
	flags.StringArrayVar(&c.opts.envFiles, "env-file", nil, "path/to/.env, may be repeated")
	flags.BoolVar(&c.opts.simulate, "simulate", false, "use an in-process simulated chain instead of ETHEREUM_ENDPOINT")
	flags.BoolVarP(&c.opts.verbose, "verbose", "v", false, "log every step to stderr")

	root.AddCommand(c.statusCmd(), c.joinCmd(), c.versionCmd(version))
	return root
}

// openService wires one command's worth of components, nothing outlives the process
func (c *cli) openService() (*whitelist.Service, error) {
	if err := config.LoadEnvFiles(c.opts.envFiles...); err != nil {
		return nil, err
	}

	cfg, err := config.GetNodeConfigFromFiles(c.opts.configFiles, "")
	if err != nil {
		return nil, err
	}
	if c.opts.simulate {
		config.EnableSimulator(cfg)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	logger := c.newLogger(c.opts.verbose).WithTags(log.String("network", cfg.EthereumNetwork()))
	alerter := chain.AlerterFunc(func(message string) {
		fmt.Fprintln(c.stderr, "ALERT:", message)
	})
	registry := metric.NewRegistry().WithChainId(cfg.EthereumChainId())

	return whitelist.NewService(cfg, c.newConnector(cfg, logger), alerter, logger, registry), nil
}

func validate(cfg config.NodeConfig) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("invalid configuration: %v", r)
		}
	}()
	config.Validate(cfg)
	return nil
}
