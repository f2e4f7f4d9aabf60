// Command quotesctl lists an associate's latest quotes from the terminal.
package main

import "os"

func main() {
	if err := newRootCmd(defaultCLI()).Execute(); err != nil {
		os.Exit(1)
	}
}
