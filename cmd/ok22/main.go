// Package main provides the entry point for the ok22 CLI.
//
// ok22 is a mass activation scanner for STB hardware addresses. It
// queries an activation portal for each candidate address, with bounded
// parallelism, fixed retries, and optional proxy rotation, and appends
// every confirmed entitlement to flat result files.
//
// Usage:
//
//	ok22 scan AA:BB:CC:DD:EE:FF
//	ok22 scan --list macs.txt --proxies proxies.txt
//	ok22 scan --random 500 --prefix 00:1A:79
//
// See --help for all available options.
package main

// main is the entry point for ok22.
func main() {
	Execute()
}
