// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contract

import (
	"github.com/crypto-devs/whitelist-dapp/services/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// BindContract builds a new binding on every call; signing goes through the access object's signer, if any
func BindContract(access chain.AccessObject, address common.Address) (*Whitelist, error) {
	whitelist, err := NewWhitelist(address, access.Backend())
	if err != nil {
		return nil, errors.Wrap(err, "failed binding whitelist contract")
	}
	return whitelist, nil
}
