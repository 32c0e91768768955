// Package clientip resolves the caller's IP address behind Cloudflare,
// DigitalOcean App Platform or a generic reverse proxy.
//
// GetIP trusts forwarding headers and is only safe behind a proxy that sets
// them. RemoteIP reads the connection peer address.
package clientip
