// Package token implements the sync credential subsystem.
//
// Credentials are HS256-signed JWTs carrying the application identity as
// both issuer and audience. Every issued credential is also persisted as an
// APIToken row, which makes it revocable and gives it a server-side expiry
// that can be tightened independently of the signed exp claim.
//
// # Validation
//
// A presented credential is valid only if the signature verifies, the
// identity claims match, the persisted record exists, it is not revoked,
// and both expiry sources (signed claim and persisted expires_at) are in
// the future. Validity is strictly boolean.
//
// # Components
//
//   - Issuer: signs and persists new credentials.
//   - Validator: the boolean validity check, plus the RequireValid Fiber
//     middleware guarding the sync API.
//   - Service/Handler: the administrative surface (list, issue, revoke
//     toggle, delete), also reachable from the CLI.
package token
