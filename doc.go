// Package reshadx provides a Go client SDK for the ReshADX open banking API:
// account linking, accounts and transactions, credit scoring, fraud and risk
// signals, and webhooks.
//
// Every call goes through a transport that adds the API key and bearer token
// headers, retries transient failures with exponential backoff, and returns
// failures as a single *Error type carrying the API error code.
//
// Basic usage:
//
//	client, err := reshadx.New("your-api-key", reshadx.WithEnvironment(reshadx.EnvironmentSandbox))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Log in; the access token is stored on the client
//	_, err = client.Auth.Login(ctx, reshadx.LoginParams{
//	    Email:    "user@example.com",
//	    Password: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	accounts, err := client.Accounts.List(ctx, "")
//	if errors.Is(err, reshadx.ErrAuthentication) {
//	    // log in again
//	}
//
// Webhook deliveries are verified against the webhook secret, with sig being
// the hex signature sent alongside the raw body:
//
//	payload := reshadx.ParseWebhookPayload(body, sig, secret)
//	if payload == nil {
//	    http.Error(w, "invalid signature", http.StatusUnauthorized)
//	    return
//	}
package reshadx
