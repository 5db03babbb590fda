// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package commands

import (
	"fmt"
	"github.com/crypto-devs/whitelist-dapp/services/whitelist"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/theckman/yacspin"
	"io"
	"strconv"
	"time"
)

func printState(w io.Writer, state whitelist.State) {
	account := state.Account
	if account == "" {
		account = "-"
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Wallet connected", strconv.FormatBool(state.WalletConnected)},
		{"Account", account},
		{"Whitelisted", fmt.Sprintf("%d of %d", state.NumberOfWhitelisted, state.MaxWhitelisted)},
		{"Joined", strconv.FormatBool(state.JoinedWhitelist)},
		{"Next", whitelist.RenderButton(state).Label},
	})
	if state.Alert != "" {
		t.AppendRow(table.Row{"Alert", state.Alert})
	}
	if state.LastError != "" {
		t.AppendRow(table.Row{"Last error", state.LastError})
	}
	t.Render()
}

type progress struct {
	message string
	out     io.Writer
	spinner *yacspin.Spinner
}

// startProgress animates on a terminal and falls back to plain lines otherwise
func (c *cli) startProgress(message string) *progress {
	p := &progress{message: message, out: c.stderr}
	if !c.interactive {
		fmt.Fprintf(p.out, "%s...\n", message)
		return p
	}

	spinner, err := yacspin.New(yacspin.Config{
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[14],
		Writer:            c.stderr,
		Suffix:            " ",
		Message:           message,
		StopCharacter:     "✓",
		StopMessage:       "mined",
		StopFailCharacter: "✗",
		StopFailMessage:   "failed",
	})
	if err != nil || spinner.Start() != nil {
		fmt.Fprintf(p.out, "%s...\n", message)
		return p
	}
	p.spinner = spinner
	return p
}

func (p *progress) done(success bool) {
	if p.spinner == nil {
		if success {
			fmt.Fprintf(p.out, "%s: mined\n", p.message)
		} else {
			fmt.Fprintf(p.out, "%s: failed\n", p.message)
		}
		return
	}

	if success {
		_ = p.spinner.Stop()
	} else {
		_ = p.spinner.StopFail()
	}
}
