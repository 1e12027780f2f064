package transport

import "strings"

// publicRoutes lists endpoints reachable without authentication. A "*"
// segment matches exactly one path segment. Query strings are ignored
// when matching.
var publicRoutes = []string{
	"/v1/health",
	"/v1/identities/register",
	"/v1/origins/*/app-config",
	"/v1/rates",
}

// isPublicRoute reports whether path matches one of the public route
// patterns. Public routes never receive an Authorization header,
// regardless of the configured auth strategy.
func isPublicRoute(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, pattern := range publicRoutes {
		if matchRoute(pattern, path) {
			return true
		}
	}
	return false
}

func matchRoute(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(segs) {
		return false
	}
	for i, p := range ps {
		if p == "*" {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}
