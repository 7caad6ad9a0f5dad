// Package funkos implements the backend core for a collectible figure
// catalog: a stateless JWT authentication and role-authorization layer
// (sign-up, sign-in, token issuance and validation, claims extraction,
// role gating) and a cache-aside read path applied uniformly to catalog
// entities (funkos and categories).
//
// The package is deliberately boundary-free. Routing, GraphQL execution,
// the real-time transport, and the mail transport are external
// collaborators reached through the narrow interfaces declared in
// types.go (UserStore, FunkoStore, CategoryStore, CacheStore, Notifier,
// Sender). Concrete bun-backed repositories and redis/in-memory cache
// backends are provided for hosts that want the default wiring.
package funkos
