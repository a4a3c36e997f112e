// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for taosrelease.
//
// The root command builds and packages the taos_odbc driver; info prints the
// resolved release context and config inspects the configuration file.
package cmd
