// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package whitelist

type State struct {
	WalletConnected     bool
	JoinedWhitelist     bool
	Loading             bool
	NumberOfWhitelisted uint64
	MaxWhitelisted      uint64
	Account             string
	Alert               string
	LastError           string
}

type Action string

const (
	ACTION_NONE    Action = ""
	ACTION_CONNECT Action = "connect"
	ACTION_JOIN    Action = "join"
)

type Button struct {
	Label   string
	Action  Action
	Enabled bool
}

// RenderButton picks the primary control; not-connected wins over joined, joined over loading
func RenderButton(s State) Button {
	switch {
	case !s.WalletConnected:
		return Button{Label: "Connect your Wallet", Action: ACTION_CONNECT, Enabled: true}
	case s.JoinedWhitelist:
		return Button{Label: "Thanks for joining the Whitelist!", Action: ACTION_NONE}
	case s.Loading:
		return Button{Label: "Loading...", Action: ACTION_NONE}
	default:
		return Button{Label: "Join the Whitelist", Action: ACTION_JOIN, Enabled: true}
	}
}
