package main

import "github.com/LegacyCodeHQ/ecocap/cmd"

func main() {
	cmd.Execute()
}
