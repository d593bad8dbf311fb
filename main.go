// Package main is the entry point for the undercover CLI.
package main

import "github.com/NeatNerdPrime/undercover/cmd"

func main() {
	cmd.Execute()
}
