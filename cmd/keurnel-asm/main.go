package main

import "github.com/keurnel/x86enc/cmd/keurnel-asm/cmd"

func main() {
	cmd.Execute()
}
