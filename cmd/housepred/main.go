// Package main provides the entry point for the housepred CLI.
//
// housepred sends Boston housing features to a price prediction backend
// and keeps a small local user profile.
//
// Usage:
//
//	housepred predict --sample
//	housepred predict --rm 6.5 --lstat 4.9 --json
//	housepred predict --file rows.yaml
//	housepred signup --name Jane --email jane@example.com
//	housepred profile show
//
// See --help for all available options.
package main

func main() {
	Execute()
}
