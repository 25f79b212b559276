// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServerConfigured = errors.New("no http server configured: address is empty")
)
