// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// bldctlgo is the main package for the bldctl command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point for the
// bldc driver's build-support utilities.
package main
