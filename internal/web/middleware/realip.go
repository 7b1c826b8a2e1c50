package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/stickers/internal/core"
)

// ProxySet is the list of networks whose forwarding headers are believed.
type ProxySet []*net.IPNet

// ParseProxies parses CIDRs or bare IPs. Invalid entries are logged and skipped.
func ParseProxies(entries []string) ProxySet {
	var set ProxySet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 128
				if ip.To4() != nil {
					bits = 32
				}
				entry += "/" + strconv.Itoa(bits)
			}
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			slog.Warn("ignoring invalid trusted proxy", "entry", entry, "error", err)
			continue
		}
		set = append(set, network)
	}
	return set
}

// Contains reports whether ip is inside one of the networks.
func (s ProxySet) Contains(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, network := range s {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the address of the caller. X-Real-IP, then the first
// X-Forwarded-For hop, are honoured only when the connection comes from a
// trusted proxy and the header holds a valid IP.
func (s ProxySet) ClientIP(r *http.Request) string {
	remote := hostOnly(r.RemoteAddr)
	if !s.Contains(net.ParseIP(remote)) {
		return remote
	}

	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return remote
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ClientInfo resolves the caller's address through proxies, rewrites
// RemoteAddr to it and stores it with the user agent in the request
// context for run history.
func ClientInfo(proxies ProxySet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := proxies.ClientIP(r)
			r.RemoteAddr = ip

			ctx := core.ContextWithClient(r.Context(), core.ClientInfo{
				IP:        ip,
				UserAgent: r.UserAgent(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
