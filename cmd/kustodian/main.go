package main

import "github.com/kustodian/kustodian/internal/cmd"

func main() {
	cmd.Execute()
}
