package handler

import (
	"net/http"
	"strings"
)

// Defaults used when the corresponding Config field is empty.
const (
	DefaultAPIPrefix      = "/api"
	DefaultClientIPHeader = "CF-Connecting-IP"

	// UnknownIP stands in for the client address when the trusted header is absent.
	UnknownIP = "UNKNOWN_IP"
)

// Config is the static, deploy-time configuration of the handler.
type Config struct {
	// APIPrefix is the path prefix that, on POST, selects Create-Link.
	APIPrefix string

	// ClientIPHeader names the header the fronting proxy sets to the caller's IP.
	ClientIPHeader string

	// AllowedIPs may create links. Everyone may resolve them.
	AllowedIPs []string

	// Origin, when set, replaces the request's own origin in returned short URLs.
	Origin string
}

func (c Config) withDefaults() Config {
	if c.APIPrefix == "" {
		c.APIPrefix = DefaultAPIPrefix
	}
	if c.ClientIPHeader == "" {
		c.ClientIPHeader = DefaultClientIPHeader
	}
	c.AllowedIPs = append([]string(nil), c.AllowedIPs...)
	c.Origin = strings.TrimSuffix(c.Origin, "/")
	return c
}

// ClientIP reads the caller's address from header. The whole trimmed value
// is the address; a list such as "a, b" never matches a single allowed IP.
func ClientIP(r *http.Request, header string) string {
	ip := strings.TrimSpace(r.Header.Get(header))
	if ip == "" {
		return UnknownIP
	}
	return ip
}

func (h *Handler) clientIP(r *http.Request) string {
	return ClientIP(r, h.cfg.ClientIPHeader)
}

func (h *Handler) isAllowed(ip string) bool {
	_, ok := h.allowed[ip]
	return ok
}

// origin is scheme://host of the request as the client addressed it.
func (h *Handler) origin(r *http.Request) string {
	if h.cfg.Origin != "" {
		return h.cfg.Origin
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}
