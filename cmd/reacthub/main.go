// Package main is the entry point for reacthub.
package main

func main() {
	Execute()
}
