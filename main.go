package main

import "koin-ledger/cmd"

func main() {
	cmd.Execute()
}
