package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/backends"
	"github.com/ethereum/go-ethereum/params"
)

// simulatedChain adapts a SimulatedBackend to EthereumBackend for tests.
type simulatedChain struct {
	*backends.SimulatedBackend
}

func (s *simulatedChain) ChainID(ctx context.Context) (*big.Int, error) {
	return params.AllEthashProtocolChanges.ChainID, nil
}
