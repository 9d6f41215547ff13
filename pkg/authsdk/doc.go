/*
Package authsdk provides a client SDK for the Praetor account service.

# Overview

The package is organized around three types:

  - SDKClient: HTTP calls to the service, unauthenticated and guarded
  - Session: the persistent client-side session cache
  - Guard: route protection decisions for front-end shells

Create a client with a storage backend and restore any persisted login:

	client := authsdk.NewSDKClient("https://api.example.com", authsdk.NewFileStore(cachePath))
	if err := client.Session.Restore(); err != nil {
		log.Fatal(err)
	}

	if _, err := client.Login(ctx, email, password); err != nil {
		// 404 unknown email, 401 wrong password, 403 pending approval
	}

# Session semantics

Login writes the account summary and the raw token to storage in a single
snapshot; Logout clears both the same way. A restored token is trusted
without verification until the first guarded request is answered 401, at
which point the session invalidates itself and guards start redirecting to
the entry path again. IsAuthenticated and IsAdmin are cheap hints for UI
rendering; the server remains the authority on every request.

# Route guards

	guard := authsdk.Guard{AdminOnly: true, EntryPath: "/", LandingPath: "/dashboard"}

	stop := guard.Watch(client.Session, func(d authsdk.Decision) {
		if !d.Allow {
			navigate(d.RedirectTo)
		}
	})
	defer stop()

Watch re-evaluates on every session change, so a logout or an invalidated
token removes a protected view on the next render cycle.

# Thread safety

Session is safe for concurrent use. Subscriber callbacks run synchronously on
the goroutine that changed the session.
*/
package authsdk
