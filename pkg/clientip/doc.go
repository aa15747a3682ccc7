// Package clientip extracts real client IP addresses from HTTP requests.
//
// Headers are checked in priority order:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For, leftmost entry
//  4. X-Real-IP
//  5. RemoteAddr
//
// Invalid addresses and the unspecified address 0.0.0.0 are skipped. IPs are
// normalized through netip, so IPv4-mapped IPv6 addresses come back as IPv4.
//
//	ip := clientip.GetIP(r)
//	if blocked, _ := store.IsBlacklisted(ctx, ip); blocked {
//		...
//	}
//
// GetIP never panics. When no header or RemoteAddr yields a valid IP it
// returns the raw RemoteAddr.
package clientip
