// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"testing"
)

// AssertCmpEqual reports only the differing fields, which keeps failures on wide state structs readable
func AssertCmpEqual(tb testing.TB, expected interface{}, actual interface{}, msgAndArgs ...interface{}) bool {
	if diff := cmp.Diff(expected, actual); diff != "" {
		return assert.Fail(tb, "Not equal (-expected +actual):\n"+diff, msgAndArgs...)
	}
	return true
}

func RequireCmpEqual(tb testing.TB, expected interface{}, actual interface{}, msgAndArgs ...interface{}) {
	if AssertCmpEqual(tb, expected, actual, msgAndArgs...) {
		return
	}
	tb.FailNow()
}
