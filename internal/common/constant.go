// Package common contains shared constants and sentinel errors used across
// technotes components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token inside the authorization header.
const BearerPrefix = "Bearer "
