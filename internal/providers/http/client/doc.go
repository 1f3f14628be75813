// Package client provides the outbound HTTP client shared by the model
// provider gateways.
//
// Built on go-resty/resty with a go-retryablehttp pooled transport and
// bytedance/sonic as the JSON codec. Each client carries:
//   - a bearer token and base URL
//   - an optional request timeout
//   - an outbound rate limiter (unlimited by default)
//   - an optional circuit breaker
//
// Requests are never retried: a failed call is reported once to the caller.
//
// Example Usage:
//
//	c := client.NewClient(client.Options{BaseURL: url, APIKey: key})
//	req, err := c.Request(ctx)
//	resp, err := c.Execute(func() (*resty.Response, error) {
//		return req.SetBody(body).SetResult(&out).Post("/chat/completions")
//	})
package client
