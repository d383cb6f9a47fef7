package main

import "github.com/gmssl/gmssl-src/cmd/gmssl-src/internal"

func main() {
	internal.Execute()
}
