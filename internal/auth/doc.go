// Package auth implements credential handling and bearer-token
// authentication for the API.
//
// Registration and login issue HS256-signed JWTs whose subject is the user
// ID; the middleware verifies them on protected routes and places the
// resolved user ID on the request context. Passwords are stored as bcrypt
// hashes only. There is no refresh or revocation mechanism: a token is valid
// until it expires.
package auth
