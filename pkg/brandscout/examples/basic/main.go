// ABOUTME: Basic example showing brand and script discovery with the BrandScout library
// ABOUTME: Demonstrates default configuration and handling of rate limit errors

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"brandscout-api/core/errors"
	"brandscout-api/pkg/brandscout"
)

func main() {
	client, err := brandscout.NewClient(brandscout.WithBrandGate())
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("=== Brand ===")
	result, err := client.DiscoverBrand(ctx, "example-user", "github.com")
	if err != nil {
		log.Printf("Error discovering brand: %v\n", err)
	} else {
		for _, c := range result.Colors {
			fmt.Printf("%s (%s)\n", c.Hex, c.Source)
		}
		if result.Logo != nil {
			fmt.Printf("Logo: %s via %s\n", result.Logo.URL, result.Logo.Method)
		}
		for _, w := range result.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
	}

	fmt.Println("\n=== Scripts ===")
	scripts, err := client.DiscoverScripts(ctx, "example-user", "github.com")
	if limited, ok := err.(*errors.RateLimitedError); ok {
		fmt.Printf("Slow down, retry in %s\n", limited.RetryAfter.Round(time.Second))
		return
	}
	if err != nil {
		log.Fatalf("Error discovering scripts: %v", err)
	}
	for _, s := range scripts.Scripts {
		name := s.Vendor
		if !s.Recognized {
			name = "unrecognized"
		}
		fmt.Printf("%-24s %s\n", name, s.Src)
	}
}
