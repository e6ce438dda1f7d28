// Package main is the entry point for the CARTX storefront backend.
package main

func main() {
	Execute()
}
