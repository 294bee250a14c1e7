package main

import "github.com/scroogecoin/core/cmd/scroogecoind/cmd"

func main() {
	cmd.Execute()
}
