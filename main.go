// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/taosdata/taosrelease/cmd/taosrelease"

func main() {
	cmd.Execute()
}
