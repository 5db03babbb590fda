// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package commands

import (
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/crypto-devs/whitelist-dapp/services/chain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Connect the wallet and show the whitelist state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := c.openService()
			if err != nil {
				return err
			}

			ctx := trace.NewContext(cmd.Context(), "cli-status")
			err = service.ConnectWallet(ctx)
			if errors.Cause(err) == chain.ErrNoSigner {
				// read-only wallet, the count was still refreshed
				err = nil
			}

			printState(c.stdout, service.State())
			return err
		},
	}
}
