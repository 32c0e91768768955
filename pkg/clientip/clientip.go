package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order before falling back to RemoteAddr.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the normalized client IP of r, or "" if none of the proxy
// headers nor RemoteAddr hold a valid address. For X-Forwarded-For the first
// valid entry wins.
//
// The headers are client-controlled unless a reverse proxy overwrites them.
// Use GetIP only behind such a proxy; otherwise use RemoteIP.
func GetIP(r *http.Request) string {
	for _, name := range proxyHeaders {
		v := r.Header.Get(name)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := normalize(candidate); ip != "" {
				return ip
			}
		}
	}
	return RemoteIP(r)
}

// RemoteIP returns the normalized address of the peer that opened the
// connection, ignoring forwarding headers.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
