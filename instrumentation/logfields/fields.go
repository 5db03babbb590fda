// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package logfields

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
)

func Account(address common.Address) *log.Field {
	return log.String("account", address.Hex())
}

func Contract(address common.Address) *log.Field {
	return log.String("contract", address.Hex())
}

func Transaction(txHash common.Hash) *log.Field {
	return log.String("txHash", txHash.Hex())
}

func ChainId(chainId uint64) *log.Field {
	return &log.Field{Key: "chain-id", Uint: chainId, Type: log.UintType}
}

type govnrErrorer struct {
	logger log.Logger
}

func (h *govnrErrorer) Error(err error) {
	h.logger.Error("recovered panic", log.Error(err))
}

func GovnrErrorer(logger log.Logger) govnr.Errorer {
	return &govnrErrorer{logger}
}
