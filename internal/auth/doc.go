// Package auth provides authentication for equipos-api.
//
// # Components
//
//   - TokenCodec: issues and verifies HS256 JWTs whose subject is the
//     username. Tokens are stateless; nothing is stored server-side.
//
//   - Gate: verifies a username/password pair with bcrypt against the
//     principal's stored hash and issues a token on success.
//
//   - Middleware: HTTP middleware that evaluates an ordered list of
//     (method, pattern, public) rules, extracts the bearer token on
//     protected routes, resolves the principal, and rejects with 401 on any
//     failure. There is exactly one authentication decision per request.
//
// # Principal Propagation
//
// The authenticated Principal travels through the request explicitly via
// context.Context:
//
//	ctx = auth.WithPrincipal(ctx, p)
//	p := auth.FromContext(ctx)
//
// There is no ambient security context; handlers that need the identity
// read it from their own request's context.
//
// # Failure Policy
//
// The middleware fails closed: a malformed, expired, or mis-signed token on
// a protected route ends the request with 401 instead of forwarding it
// anonymously. Login failures collapse to a single generic message so
// callers cannot probe which usernames exist.
package auth
