// ABOUTME: Request DTOs for the discovery endpoints
// ABOUTME: Both pipelines accept the same single-URL body

package requests

// DiscoverRequest is the body of POST /discover/brand and /discover/scripts.
// URL is optional in the schema so a missing or blank value reaches the
// pipeline's own validation and yields a 400.
type DiscoverRequest struct {
	URL string `json:"url,omitempty" maxLength:"2048" doc:"Page to inspect. A bare host such as example.com is fetched over https." example:"example.com"`
}
