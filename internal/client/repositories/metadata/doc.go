// Package metadata provides the client-side key/value store that keeps the
// session across restarts (the CLI's equivalent of browser local storage).
//
// # Overview
//
// Repository is a tiny key/value contract. Get returns (nil, nil) for absent
// keys. SetMany writes several keys atomically where the backend allows it.
//
// Backends:
//
//   - SQLiteRepository: default; a file-backed table migrated with goose
//   - MemRepository: hashicorp/go-memdb, for tests and throwaway sessions
//   - RedisRepository: one Redis hash, shared between processes
//   - SealedRepository: wraps any backend and encrypts values at rest
//
// # Usage
//
//	repo, closeFn, err := metadata.Open(ctx, metadata.Options{Driver: metadata.DriverSQLite, DSN: "donatello.db"})
//	defer closeFn()
//	_ = repo.SetMany(ctx, map[string][]byte{"access_token": a, "refresh_token": r})
//	tok, _ := repo.Get(ctx, "access_token")
package metadata
