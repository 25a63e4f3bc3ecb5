// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive client application runtime.
//
// It wires local storage, the remote adapter, the sync engine, the network
// monitor and the terminal UI into a single process lifecycle.
package client
