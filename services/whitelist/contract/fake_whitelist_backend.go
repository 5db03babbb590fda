// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contract

import (
	"context"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"math/big"
	"strings"
	"sync"
)

const fakeGasEstimate = 46000

var ErrAlreadyWhitelistedRevert = errors.New("execution reverted: Sender has already been whitelisted")
var ErrLimitReachedRevert = errors.New("execution reverted: More addresses cant be added, limit reached")

// FakeWhitelistBackend is an in-memory chain holding a single whitelist contract. Transactions are mined on
// submission unless mining is held.
type FakeWhitelistBackend struct {
	address common.Address
	abi     abi.ABI

	mu struct {
		sync.Mutex
		chainId       *big.Int
		max           uint8
		whitelisted   map[common.Address]bool
		count         uint8
		nonces        map[common.Address]uint64
		receipts      map[common.Hash]*types.Receipt
		pending       []*types.Transaction
		holdMining    bool
		failNextMined bool
		callErr       error
		chainIdErr    error
		blockNumber   int64
	}
}

func NewFakeWhitelistBackend(chainId uint64, address common.Address, maxWhitelisted uint8) *FakeWhitelistBackend {
	parsed, err := abi.JSON(strings.NewReader(WhitelistABI))
	if err != nil {
		panic(err)
	}

	b := &FakeWhitelistBackend{address: address, abi: parsed}
	b.mu.chainId = new(big.Int).SetUint64(chainId)
	b.mu.max = maxWhitelisted
	b.mu.whitelisted = make(map[common.Address]bool)
	b.mu.nonces = make(map[common.Address]uint64)
	b.mu.receipts = make(map[common.Hash]*types.Receipt)
	return b
}

func (b *FakeWhitelistBackend) Address() common.Address {
	return b.address
}

func (b *FakeWhitelistBackend) Whitelist(addresses ...common.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, address := range addresses {
		b.addLocked(address)
	}
}

func (b *FakeWhitelistBackend) IsWhitelisted(address common.Address) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mu.whitelisted[address]
}

func (b *FakeWhitelistBackend) Count() uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mu.count
}

func (b *FakeWhitelistBackend) SetChainId(chainId uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.chainId = new(big.Int).SetUint64(chainId)
}

// FailCalls makes every read fail with err until called again with nil
func (b *FakeWhitelistBackend) FailCalls(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.callErr = err
}

func (b *FakeWhitelistBackend) FailChainId(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.chainIdErr = err
}

// FailNextMinedTransaction mines the next transaction with a failed receipt and no state change
func (b *FakeWhitelistBackend) FailNextMinedTransaction() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.failNextMined = true
}

func (b *FakeWhitelistBackend) HoldMining() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.holdMining = true
}

func (b *FakeWhitelistBackend) PendingTransactions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.mu.pending)
}

// ReleaseMining mines everything submitted while mining was held and resumes mining on submission
func (b *FakeWhitelistBackend) ReleaseMining() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.holdMining = false
	for _, tx := range b.mu.pending {
		b.mineLocked(tx)
	}
	b.mu.pending = nil
}

func (b *FakeWhitelistBackend) ChainID(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mu.chainIdErr != nil {
		return nil, b.mu.chainIdErr
	}
	return new(big.Int).Set(b.mu.chainId), nil
}

func (b *FakeWhitelistBackend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	if contract != b.address {
		return nil, nil
	}
	return []byte{0x60, 0x80, 0x60, 0x40}, nil
}

func (b *FakeWhitelistBackend) PendingCodeAt(ctx context.Context, contract common.Address) ([]byte, error) {
	return b.CodeAt(ctx, contract, nil)
}

func (b *FakeWhitelistBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mu.callErr != nil {
		return nil, b.mu.callErr
	}

	if call.To == nil || *call.To != b.address {
		return nil, nil
	}

	method, err := b.abi.MethodById(call.Data)
	if err != nil {
		return nil, errors.Wrap(err, "execution reverted")
	}

	switch method.Name {
	case "numAddressesWhitelisted":
		return method.Outputs.Pack(b.mu.count)
	case "maxWhitelistedAddresses":
		return method.Outputs.Pack(b.mu.max)
	case "whitelistedAddresses":
		args, err := method.Inputs.UnpackValues(call.Data[4:])
		if err != nil {
			return nil, errors.Wrap(err, "execution reverted")
		}
		return method.Outputs.Pack(b.mu.whitelisted[args[0].(common.Address)])
	default:
		return nil, errors.Errorf("execution reverted: %s is not a view", method.Name)
	}
}

func (b *FakeWhitelistBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mu.nonces[account], nil
}

func (b *FakeWhitelistBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1000000000), nil
}

func (b *FakeWhitelistBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkJoinLocked(call.From); err != nil {
		return 0, err
	}
	return fakeGasEstimate, nil
}

func (b *FakeWhitelistBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	from, err := types.Sender(types.HomesteadSigner{}, tx)
	if err != nil {
		return errors.Wrap(err, "invalid transaction signature")
	}

	if tx.To() == nil || *tx.To() != b.address {
		return errors.New("transaction is not addressed to the whitelist contract")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if tx.Nonce() != b.mu.nonces[from] {
		return errors.Errorf("nonce too low: have %d, expected %d", tx.Nonce(), b.mu.nonces[from])
	}
	b.mu.nonces[from]++

	if b.mu.holdMining {
		b.mu.pending = append(b.mu.pending, tx)
		return nil
	}

	b.mineLocked(tx)
	return nil
}

func (b *FakeWhitelistBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if receipt, ok := b.mu.receipts[txHash]; ok {
		return receipt, nil
	}
	return nil, ethereum.NotFound
}

func (b *FakeWhitelistBackend) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (b *FakeWhitelistBackend) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("log subscriptions are not supported")
}

func (b *FakeWhitelistBackend) checkJoinLocked(from common.Address) error {
	if b.mu.whitelisted[from] {
		return ErrAlreadyWhitelistedRevert
	}
	if b.mu.count >= b.mu.max {
		return ErrLimitReachedRevert
	}
	return nil
}

func (b *FakeWhitelistBackend) mineLocked(tx *types.Transaction) {
	from, _ := types.Sender(types.HomesteadSigner{}, tx)

	b.mu.blockNumber++
	status := types.ReceiptStatusSuccessful
	if b.mu.failNextMined || b.checkJoinLocked(from) != nil {
		b.mu.failNextMined = false
		status = types.ReceiptStatusFailed
	} else {
		b.addLocked(from)
	}

	b.mu.receipts[tx.Hash()] = &types.Receipt{
		Status:      status,
		TxHash:      tx.Hash(),
		GasUsed:     fakeGasEstimate,
		BlockNumber: big.NewInt(b.mu.blockNumber),
	}
}

func (b *FakeWhitelistBackend) addLocked(address common.Address) {
	if b.mu.whitelisted[address] {
		return
	}
	b.mu.whitelisted[address] = true
	b.mu.count++
}
