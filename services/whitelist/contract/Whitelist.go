// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contract

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"strings"
)

const WhitelistABI = `
[
    {
      "inputs": [
        {
          "name": "_maxWhitelistedAddresses",
          "type": "uint8"
        }
      ],
      "payable": false,
      "stateMutability": "nonpayable",
      "type": "constructor"
    },
    {
      "constant": false,
      "inputs": [],
      "name": "addAddressToWhitelist",
      "outputs": [],
      "payable": false,
      "stateMutability": "nonpayable",
      "type": "function"
    },
    {
      "constant": true,
      "inputs": [],
      "name": "maxWhitelistedAddresses",
      "outputs": [
        {
          "name": "",
          "type": "uint8"
        }
      ],
      "payable": false,
      "stateMutability": "view",
      "type": "function"
    },
    {
      "constant": true,
      "inputs": [],
      "name": "numAddressesWhitelisted",
      "outputs": [
        {
          "name": "",
          "type": "uint8"
        }
      ],
      "payable": false,
      "stateMutability": "view",
      "type": "function"
    },
    {
      "constant": true,
      "inputs": [
        {
          "name": "",
          "type": "address"
        }
      ],
      "name": "whitelistedAddresses",
      "outputs": [
        {
          "name": "",
          "type": "bool"
        }
      ],
      "payable": false,
      "stateMutability": "view",
      "type": "function"
    }
  ]`

// Whitelist is a binding around the deployed whitelist contract
type Whitelist struct {
	WhitelistCaller
	WhitelistTransactor

	address common.Address
}

type WhitelistCaller struct {
	contract *bind.BoundContract
}

type WhitelistTransactor struct {
	contract *bind.BoundContract
}

// WhitelistSession pins call and transact options so each method can be called without them
type WhitelistSession struct {
	Contract     *Whitelist
	CallOpts     bind.CallOpts
	TransactOpts bind.TransactOpts
}

func NewWhitelist(address common.Address, backend bind.ContractBackend) (*Whitelist, error) {
	parsed, err := abi.JSON(strings.NewReader(WhitelistABI))
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(address, parsed, backend, backend, backend)
	return &Whitelist{
		WhitelistCaller:     WhitelistCaller{contract: contract},
		WhitelistTransactor: WhitelistTransactor{contract: contract},
		address:             address,
	}, nil
}

func (_Whitelist *Whitelist) Address() common.Address {
	return _Whitelist.address
}

func (_Whitelist *WhitelistCaller) NumAddressesWhitelisted(opts *bind.CallOpts) (uint8, error) {
	var (
		ret0 = new(uint8)
	)
	out := ret0
	err := _Whitelist.contract.Call(opts, out, "numAddressesWhitelisted")
	return *ret0, err
}

func (_Whitelist *WhitelistCaller) MaxWhitelistedAddresses(opts *bind.CallOpts) (uint8, error) {
	var (
		ret0 = new(uint8)
	)
	out := ret0
	err := _Whitelist.contract.Call(opts, out, "maxWhitelistedAddresses")
	return *ret0, err
}

func (_Whitelist *WhitelistCaller) WhitelistedAddresses(opts *bind.CallOpts, arg0 common.Address) (bool, error) {
	var (
		ret0 = new(bool)
	)
	out := ret0
	err := _Whitelist.contract.Call(opts, out, "whitelistedAddresses", arg0)
	return *ret0, err
}

func (_Whitelist *WhitelistTransactor) AddAddressToWhitelist(opts *bind.TransactOpts) (*types.Transaction, error) {
	return _Whitelist.contract.Transact(opts, "addAddressToWhitelist")
}

func (_Whitelist *WhitelistSession) NumAddressesWhitelisted() (uint8, error) {
	return _Whitelist.Contract.NumAddressesWhitelisted(&_Whitelist.CallOpts)
}

func (_Whitelist *WhitelistSession) MaxWhitelistedAddresses() (uint8, error) {
	return _Whitelist.Contract.MaxWhitelistedAddresses(&_Whitelist.CallOpts)
}

func (_Whitelist *WhitelistSession) WhitelistedAddresses(arg0 common.Address) (bool, error) {
	return _Whitelist.Contract.WhitelistedAddresses(&_Whitelist.CallOpts, arg0)
}

func (_Whitelist *WhitelistSession) AddAddressToWhitelist() (*types.Transaction, error) {
	return _Whitelist.Contract.AddAddressToWhitelist(&_Whitelist.TransactOpts)
}
