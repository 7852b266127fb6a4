package main

import (
	"log"

	"storefront/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("storefront: %v", err)
	}
}
