// Package oauth implements the authorization-code grant against the BAND
// authorization server.
//
// The flow has three phases:
//
//  1. Build the consent URL and open it in the user's browser.
//  2. Capture the redirect's authorization code through a one-shot local
//     HTTP listener (CallbackServer) bound to the configured redirect URI.
//  3. Exchange the code for an access token using HTTP Basic authentication
//     with the client credentials.
//
// The Coordinator caches the resulting token in a secrets.Store and
// short-circuits subsequent calls. Known limitations, preserved on purpose:
// cached tokens are never refreshed, and the redirect wait has no built-in
// deadline -- callers bound it through the context.
package oauth
