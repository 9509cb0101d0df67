package oauth

import (
	"net/url"
)

// OAuth2 literals required by the BAND authorization server. Any other value
// is a configuration error and no request is issued.
const (
	ResponseTypeCode           = "code"
	GrantTypeAuthorizationCode = "authorization_code"
)

// AuthorizeRequest holds the parameters of an authorization-code grant.
type AuthorizeRequest struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	ResponseType string
	GrantType    string
}

// AuthorizeURL builds the user-consent URL for the authorize endpoint.
//
// The upstream contract fixes the parameter order to response_type,
// client_id, redirect_uri, so the query is assembled by hand rather than
// through url.Values.Encode (which sorts keys).
func (r *AuthorizeRequest) AuthorizeURL(authBase string) (string, error) {
	if r.ResponseType != ResponseTypeCode {
		return "", &ConfigurationError{Field: "response_type", Value: r.ResponseType}
	}

	return authBase + "/oauth2/authorize" +
		"?response_type=" + url.QueryEscape(r.ResponseType) +
		"&client_id=" + url.QueryEscape(r.ClientID) +
		"&redirect_uri=" + url.QueryEscape(r.RedirectURI), nil
}

// TokenURL builds the token-exchange URL for a captured authorization code.
func (r *AuthorizeRequest) TokenURL(authBase, code string) (string, error) {
	if r.GrantType != GrantTypeAuthorizationCode {
		return "", &ConfigurationError{Field: "grant_type", Value: r.GrantType}
	}

	return authBase + "/oauth2/token" +
		"?code=" + url.QueryEscape(code) +
		"&grant_type=" + url.QueryEscape(r.GrantType), nil
}
