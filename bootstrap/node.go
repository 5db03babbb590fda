// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/crypto-devs/whitelist-dapp/bootstrap/httpserver"
	"github.com/crypto-devs/whitelist-dapp/config"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/logfields"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist/contract"
	"github.com/ethereum/go-ethereum/common"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"time"
)

type Node struct {
	govnr.TreeSupervisor

	ctx        context.Context
	ctxCancel  context.CancelFunc
	logger     log.Logger
	connector  wallet.Connector
	service    *whitelist.Service
	httpServer httpserver.HttpServer
}

func NewNode(nodeConfig config.NodeConfig, logger log.Logger) *Node {
	var connector wallet.Connector
	if nodeConfig.EthereumSimulator() {
		connector = contract.NewSimulatedChainConnector(nodeConfig.EthereumChainId(), common.HexToAddress(nodeConfig.WhitelistContractAddress()), logger)
	} else {
		connector = wallet.NewRpcConnector(nodeConfig, wallet.NewTerminalPassphrasePrompt(), logger)
	}

	return NewNodeWithConnector(nodeConfig, logger, connector)
}

// NewNodeWithConnector builds the node around a connector it owns for its whole lifetime
func NewNodeWithConnector(nodeConfig config.NodeConfig, logger log.Logger, connector wallet.Connector) *Node {
	config.Validate(nodeConfig)

	ctx, ctxCancel := context.WithCancel(context.Background())
	nodeLogger := logger.WithTags(log.String("network", nodeConfig.EthereumNetwork()), logfields.ChainId(nodeConfig.EthereumChainId()))

	metricRegistry := metric.NewRegistry().WithChainId(nodeConfig.EthereumChainId())
	metricRegistry.NewText("Version.Semantic", config.GetVersion().Semantic)
	metricRegistry.NewText("Version.Commit", config.GetVersion().Commit)

	service := whitelist.NewService(nodeConfig, connector, nil, nodeLogger, metricRegistry)
	httpServer := httpserver.NewHttpServer(ctx, nodeConfig, nodeLogger, service, metricRegistry)

	n := &Node{
		ctx:        ctx,
		ctxCancel:  ctxCancel,
		logger:     nodeLogger,
		connector:  connector,
		service:    service,
		httpServer: httpServer,
	}

	initCtx := trace.NewContext(ctx, "initialize")
	govnr.Once(logfields.GovnrErrorer(nodeLogger), func() {
		if err := service.Initialize(initCtx); err != nil {
			nodeLogger.Info("wallet was not connected at startup", log.Error(err), trace.LogFieldFrom(initCtx))
		}
	})

	if interval := nodeConfig.MetricsReportInterval(); interval > 0 {
		n.Supervise(metricRegistry.PeriodicallyReport(ctx, nodeLogger, interval))
	}

	return n
}

func (n *Node) HttpPort() int {
	return n.httpServer.Port()
}

func (n *Node) State() whitelist.State {
	return n.service.State()
}

func (n *Node) GracefulShutdown(shutdownContext context.Context) {
	n.logger.Info("shutting down")
	n.ctxCancel()

	timeout := time.Duration(0)
	if deadline, ok := shutdownContext.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	n.httpServer.GracefulShutdown(timeout)
}

func (n *Node) WaitUntilShutdown(shutdownContext context.Context) {
	select {
	case <-n.ctx.Done():
	case <-shutdownContext.Done():
		return
	}
	n.TreeSupervisor.WaitUntilShutdown(shutdownContext)
}
