// Package hypersave is the Go client for the Hypersave memory API.
//
// A Client is created once with an API key and reused:
//
//	c, err := hypersave.New(os.Getenv("HYPERSAVE_API_KEY"), hypersave.WithDefaultUserID("user-42"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := c.Ask(ctx, hypersave.AskRequest{Query: "what tea do I like?"})
//
// Every method sends exactly one HTTP request bounded by the client timeout
// (30s by default) and returns either the decoded payload or an *Error whose
// Kind tells authentication, validation, not-found, rate-limit, timeout,
// network, server, parse and generic failures apart:
//
//	var e *hypersave.Error
//	if errors.As(err, &e) && e.Kind == hypersave.KindRateLimit {
//		time.Sleep(time.Duration(e.RetryAfterSeconds) * time.Second)
//	}
//
// The client never retries on its own. Use Retry to repeat calls that are
// safe to repeat.
package hypersave
