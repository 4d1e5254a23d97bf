// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/simpleaf/simpleaf/cmd/simpleaf"

func main() {
	cmd.Execute()
}
