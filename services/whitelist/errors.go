// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package whitelist

import (
	"fmt"
	"github.com/crypto-devs/whitelist-dapp/services/chain"
	"github.com/crypto-devs/whitelist-dapp/services/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var ErrNotConnected = errors.New("wallet is not connected")
var ErrAlreadyJoined = errors.New("address already joined the whitelist")
var ErrJoinInProgress = errors.New("a join transaction is already in flight")

type TransactionFailedError struct {
	TxHash common.Hash
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s was mined but failed", e.TxHash.Hex())
}

// RefreshError is returned when the main action succeeded but re-reading contract state did not
type RefreshError struct {
	errs *multierror.Error
}

func (e *RefreshError) Error() string {
	return "state refresh failed: " + e.errs.Error()
}

func (e *RefreshError) Errors() []error {
	return e.errs.WrappedErrors()
}

func IsUserRejection(err error) bool {
	return anyCause(err, func(cause error) bool {
		return cause == wallet.ErrUserRejected
	})
}

func IsNetworkMismatch(err error) bool {
	return anyCause(err, func(cause error) bool {
		_, ok := cause.(*chain.NetworkMismatchError)
		return ok
	})
}

// IsRemoteCallFailure covers whatever the node or the contract reported, as opposed to local refusals
func IsRemoteCallFailure(err error) bool {
	return anyCause(err, func(cause error) bool {
		switch cause.(type) {
		case *chain.NetworkMismatchError, *TransactionFailedError:
			return false
		}
		switch cause {
		case wallet.ErrUserRejected, wallet.ErrNoAccount, chain.ErrNoSigner, ErrNotConnected, ErrAlreadyJoined, ErrJoinInProgress:
			return false
		}
		return true
	})
}

func anyCause(err error, match func(error) bool) bool {
	if err == nil {
		return false
	}
	var inner []error
	switch e := err.(type) {
	case *RefreshError:
		inner = e.Errors()
	case *multierror.Error:
		inner = e.WrappedErrors()
	default:
		return match(errors.Cause(err))
	}
	for _, e := range inner {
		if anyCause(e, match) {
			return true
		}
	}
	return false
}
