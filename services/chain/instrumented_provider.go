// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package chain

import (
	"context"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/metric"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/ethereum/go-ethereum"
	"math/big"
	"time"
)

type instrumentedProvider struct {
	wallet.RawProvider
	callLatency *metric.Histogram
}

func (p *instrumentedProvider) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	defer p.callLatency.RecordSince(time.Now())
	return p.RawProvider.CallContract(ctx, call, blockNumber)
}
