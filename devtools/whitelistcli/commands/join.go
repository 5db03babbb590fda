// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package commands

import (
	"fmt"
	"github.com/crypto-devs/whitelist-dapp/instrumentation/trace"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist"
	"github.com/spf13/cobra"
)

func (c *cli) joinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Connect the wallet and add its address to the whitelist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := c.openService()
			if err != nil {
				return err
			}

			ctx := trace.NewContext(cmd.Context(), "cli-join")
			if err := service.ConnectWallet(ctx); err != nil {
				if _, partial := err.(*whitelist.RefreshError); !partial {
					printState(c.stdout, service.State())
					return err
				}
			}

			if service.State().JoinedWhitelist {
				printState(c.stdout, service.State())
				return nil
			}

			progress := c.startProgress(fmt.Sprintf("joining the whitelist as %s", service.State().Account))
			err = service.AddAddressToWhitelist(ctx)
			progress.done(err == nil)

			printState(c.stdout, service.State())
			return err
		},
	}
}
