// Package devapi is an in-memory stand-in for the DONATello backend.
//
// It serves the subset of the API the client consumes, under a configurable
// base path (default /api/v1):
//
//	POST /auth/login/        credentials -> {access_token, refresh_token}
//	POST /auth/refresh/      {refresh} or refresh_token_cookie -> new pair
//	POST /auth/logout/       revokes the refresh token when one is sent
//	GET  /auth/me/           current user
//	POST /users/             registration
//	GET  /users/{id}         user detail (auth)
//	PUT  /users/{id}         profile update, own account only (auth)
//	GET  /charities/         list
//	GET  /charities/{id}     detail
//	POST /charities/         create (auth)
//	GET  /fundraisers/       list
//	POST /donations/         donate (auth)
//	GET  /donations/         own donations (auth)
//
// Every response uses the {data} / {errors:[{detail, code}]} envelope.
// Tokens are HS256 JWTs carrying sub, user_data.id, type and exp. An
// expired access token yields 401 (or the configured ExpiredStatus) with
// "Signature has expired".
package devapi
