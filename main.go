// SPDX-License-Identifier: MPL-2.0

package main

import cmd "gotask-cli/cmd/gotask"

func main() {
	cmd.Execute()
}
