/*
Package security groups the access controls applied in front of the gateway.

# Authentication

Subpackage auth verifies the bearer token of every proxied request. The
default verifier asks a GoTrue identity provider (Supabase Auth) who the
token belongs to:

	verifier, err := auth.NewVerifier(cfg.Security.Auth)
	if err != nil {
		log.Fatal(err)
	}
	handler = auth.NewMiddleware(verifier, proxy.WriteError, logger).Handle(handler)

A static token table is available for local development and tests, and
verification can be disabled entirely.

# Origin Allowlist

The origin allowlist is enforced by the CORS middleware in
pkg/proxy/middleware, which runs before authentication so that a browser
on a foreign origin is refused without a round trip to the identity
provider.
*/
package security
