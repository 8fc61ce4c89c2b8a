/*
Package auth provides bearer token authentication for whalegate.

Every proxied request must carry "Authorization: Bearer <token>". The token
is handed to a Verifier, which either resolves it to an Identity or reports
that no user owns it. Both a missing user and a verification failure are
rejected with 401; there are no roles beyond authenticated or not.

# Verifiers

GoTrueVerifier asks a GoTrue (Supabase Auth) server for the user that owns
the token:

	v := auth.NewGoTrueVerifier("https://project.supabase.co", anonKey, 5*time.Second)

StaticVerifier serves a fixed token table for local development and tests:

	v := auth.NewStaticVerifier([]config.StaticToken{
		{Token: "dev-token", UserID: "dev"},
	})

NewVerifier selects one from configuration.

# Middleware

	mw := auth.NewMiddleware(v, proxy.WriteError, logger)
	handler = mw.Handle(handler)

CORS preflight requests pass through without a credential. The
authenticated user id is logged; the token itself never is. Handlers read
the identity back with GetIdentity or UserID.
*/
package auth
