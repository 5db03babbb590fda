// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package wallet

import (
	"context"
	"encoding/json"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/logfields"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"io/ioutil"
	"strings"
	"sync"
)

type dialFunc func(ctx context.Context, endpoint string) (EthereumBackend, error)

type RpcConnector struct {
	config Config
	prompt PassphrasePrompt
	logger log.Logger
	dial   dialFunc

	mu struct {
		sync.Mutex
		provider RawProvider
	}
}

func NewRpcConnector(config Config, prompt PassphrasePrompt, logger log.Logger) *RpcConnector {
	return &RpcConnector{
		config: config,
		prompt: prompt,
		logger: logger.WithTags(log.String("adapter", "ethereum"), log.String("network", config.EthereumNetwork())),
		dial:   dialEthClient,
	}
}

func dialEthClient(ctx context.Context, endpoint string) (EthereumBackend, error) {
	return ethclient.DialContext(ctx, endpoint)
}

func (c *RpcConnector) Connect(ctx context.Context) (RawProvider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mu.provider != nil {
		return c.mu.provider, nil
	}

	endpoint := c.config.EthereumEndpoint()
	backend, err := c.dial(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed dialling ethereum endpoint %s", endpoint)
	}

	account, err := c.authorize()
	if err != nil {
		c.closeIfPossible(backend)
		return nil, err
	}

	if account != nil {
		c.logger.Info("wallet connected", log.String("endpoint", endpoint), logfields.Account(account.From))
	} else {
		c.logger.Info("wallet connected without an account", log.String("endpoint", endpoint))
	}

	c.mu.provider = NewRawProvider(backend, account)
	return c.mu.provider, nil
}

func (c *RpcConnector) authorize() (*bind.TransactOpts, error) {
	if key := c.config.WalletInjectedPrivateKey(); key != "" && !c.config.WalletDisableInjectedProvider() {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(key, "0x"))
		if err != nil {
			return nil, errors.Wrap(err, "injected private key is malformed")
		}
		return bind.NewKeyedTransactor(privateKey), nil
	}

	if path := c.config.WalletKeystorePath(); path != "" {
		return c.unlockKeystore(path)
	}

	return nil, nil
}

func (c *RpcConnector) unlockKeystore(path string) (*bind.TransactOpts, error) {
	keyJson, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading keystore file %s", path)
	}

	if c.prompt == nil {
		return nil, errors.Wrap(ErrNoAccount, "keystore is configured but there is no way to ask for its passphrase")
	}

	passphrase, err := c.prompt.Passphrase(keystoreAddress(keyJson))
	if err != nil {
		return nil, errors.Wrap(ErrUserRejected, err.Error())
	}

	key, err := keystore.DecryptKey(keyJson, passphrase)
	if err == keystore.ErrDecrypt {
		return nil, errors.Wrap(ErrUserRejected, "wrong passphrase")
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed decrypting keystore file %s", path)
	}

	return bind.NewKeyedTransactor(key.PrivateKey), nil
}

// keystore files carry the account address in the clear, so the prompt can name it before decryption
func keystoreAddress(keyJson []byte) string {
	var header struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(keyJson, &header); err != nil || header.Address == "" {
		return "unknown account"
	}
	return common.HexToAddress(header.Address).Hex()
}

func (c *RpcConnector) closeIfPossible(backend EthereumBackend) {
	if closer, ok := backend.(interface{ Close() }); ok {
		closer.Close()
	}
}
