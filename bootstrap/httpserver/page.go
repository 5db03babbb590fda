// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/crypto-devs/whitelist-dapp/services/whitelist"
	"html/template"
)

type pageData struct {
	State  whitelist.State
	Button whitelist.Button
}

func (d pageData) Joined() bool {
	return d.State.WalletConnected && d.State.JoinedWhitelist
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Whitelist Dapp</title>
  <meta name="description" content="Whitelist-Dapp">
</head>
<body>
  {{- if .State.Alert}}
  <div class="alert" role="alert">{{.State.Alert}}</div>
  {{- end}}
  <div class="main">
    <div>
      <h1 class="title">Welcome to Crypto Devs!</h1>
      <div class="description">Its an NFT collection for developers in Crypto.</div>
      <div class="description" id="count">{{.State.NumberOfWhitelisted}} have already joined the Whitelist</div>
      {{- if .State.MaxWhitelisted}}
      <div class="description" id="capacity">{{.State.NumberOfWhitelisted}} of {{.State.MaxWhitelisted}} spots taken</div>
      {{- end}}
      {{- if .State.Account}}
      <div class="description" id="account">Connected as {{.State.Account}}</div>
      {{- end}}
      {{- if .Joined}}
      <div class="description" id="primary">{{.Button.Label}}</div>
      {{- else if .Button.Action}}
      <form method="post" action="/{{.Button.Action}}">
        <button class="button" id="primary" type="submit">{{.Button.Label}}</button>
      </form>
      {{- else}}
      <button class="button" id="primary" disabled>{{.Button.Label}}</button>
      {{- end}}
      {{- if .State.LastError}}
      <div class="error">{{.State.LastError}}</div>
      {{- end}}
    </div>
  </div>
  <footer class="footer">Made with &#10084; by Crypto Devs</footer>
</body>
</html>
`))
