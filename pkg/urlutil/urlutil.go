package urlutil

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Canonicalize maps equivalent spellings of a page address to one form so the
// same page always produces the same report key.
//
//   - scheme and host are lowercased
//   - default ports are dropped
//   - trailing slashes are removed except for the root path
//   - fragment and query are removed
func Canonicalize(sourceUrl url.URL) url.URL {
	canonical := sourceUrl

	canonical.Scheme = strings.ToLower(canonical.Scheme)
	canonical.Host = strings.ToLower(canonical.Host)

	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	for len(canonical.Path) > 1 && strings.HasSuffix(canonical.Path, "/") {
		canonical.Path = strings.TrimSuffix(canonical.Path, "/")
	}

	canonical.Fragment = ""
	canonical.RawFragment = ""
	canonical.RawQuery = ""
	canonical.ForceQuery = false

	return canonical
}

// ParsePageSource turns a CLI page argument into a URL. Plain filesystem
// paths become absolute file:// URLs.
func ParsePageSource(raw string) (url.URL, error) {
	if raw == "" {
		return url.URL{}, fmt.Errorf("page source cannot be empty")
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return url.URL{}, fmt.Errorf("error parsing page URL %s: %w", raw, err)
		}
		return *u, nil
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return url.URL{}, fmt.Errorf("error resolving page path %s: %w", raw, err)
	}
	return url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

// IsHTTP reports whether u can be fetched over HTTP(S).
func IsHTTP(u url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}
