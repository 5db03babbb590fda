// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package wallet

import (
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
	"io"
	"os"
)

var ErrPromptDeclined = errors.New("passphrase prompt declined")

type PassphrasePrompt interface {
	Passphrase(account string) (string, error)
}

type TerminalPassphrasePrompt struct {
	In  *os.File
	Out io.Writer
}

func NewTerminalPassphrasePrompt() *TerminalPassphrasePrompt {
	return &TerminalPassphrasePrompt{In: os.Stdin, Out: os.Stderr}
}

// an empty passphrase is taken as the user cancelling
func (p *TerminalPassphrasePrompt) Passphrase(account string) (string, error) {
	fd := int(p.In.Fd())
	if !terminal.IsTerminal(fd) {
		return "", errors.Wrap(ErrPromptDeclined, "input is not a terminal")
	}

	fmt.Fprintf(p.Out, "Unlock wallet %s\nPassphrase: ", account)
	passphrase, err := terminal.ReadPassword(fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", errors.Wrap(err, "failed reading passphrase")
	}

	if len(passphrase) == 0 {
		return "", ErrPromptDeclined
	}

	return string(passphrase), nil
}

type StaticPassphrasePrompt string

func (p StaticPassphrasePrompt) Passphrase(account string) (string, error) {
	if p == "" {
		return "", ErrPromptDeclined
	}
	return string(p), nil
}
