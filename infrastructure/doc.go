// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// - http/bounded: Outbound fetcher with a timeout, a byte budget, a redirect cap and private address blocking
// - imagecolor: Prominent color sampling for logo images
// - ratelimit/redis: Fixed-window limiter shared across replicas
// - logger/logrus: Logger adapter over logrus
// - metrics: Prometheus collectors and the HTTP metrics middleware
//
// # Fetcher
//
//	fetcher := bounded.New(bounded.DefaultOptions(), logger)
//	res, err := fetcher.Fetch(ctx, domain.FetchRequest{
//	    URL:      "https://example.com",
//	    Timeout:  10 * time.Second,
//	    MaxBytes: 2 << 20,
//	})
//
// # Logger
//
//	logger := logrus.New("info", "json")
//	logger.Info("Discovery complete", map[string]interface{}{
//	    "url":    "https://example.com",
//	    "colors": 3,
//	})
package infrastructure
