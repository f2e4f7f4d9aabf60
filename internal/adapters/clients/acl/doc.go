// Package acl is the anti-corruption layer between the quote service and the
// domain.
//
// Upstream payloads are loosely typed and may change shape without notice.
// Everything that knows about them lives here: the request body, the
// {"data": [...]} envelope, the tolerant scalar decoders and the mapping of
// HTTP and transport failures onto domain errors:
//
//   - 404              → [domain.ErrNotFound]
//   - 400/422          → [domain.ErrValidation]
//   - 401/403          → [domain.ErrForbidden]
//   - 429, 5xx, network, circuit open, undecodable body → [domain.ErrUnavailable]
//
// A well-formed reply without a data list is not an error. It is reported as
// [ports.LatestQuotes] with HasData false so the caller keeps what it has.
package acl
