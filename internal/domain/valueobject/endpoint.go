package valueobject

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// PortAbsent is the sentinel port value for an endpoint without an explicit port.
const PortAbsent = -1

// Endpoint represents a parsed network address with dual raw/decoded storage
// for the query and fragment components.
//
// Generic URI types conflate escaping layers: a percent-escaped delimiter
// (`%26` inside a query value) is indistinguishable from a structural `&` once
// decoded. Endpoint therefore keeps the query and fragment in their raw
// (still-escaped) form and only decodes on access, so transformations can
// splice the original escaping back into a string representation unchanged.
//
// An Endpoint is immutable once constructed. Every transformation in the
// normalization package produces a new value, which makes Endpoint safe for
// unrestricted concurrent use.
type Endpoint struct {
	scheme      string
	user        *url.Userinfo
	host        string // hostname only, no brackets, no port
	port        int    // PortAbsent when missing
	path        string // decoded; "" when missing
	rawQuery    *string
	rawFragment *string
}

// ParseEndpoint parses s into an Endpoint. The underlying syntax error is
// returned as-is; callers attach their own domain error.
func ParseEndpoint(s string) (Endpoint, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Endpoint{}, err
	}
	return fromURL(u), nil
}

// fromURL captures the components of a parsed URL.
//
// A query is present when the input contained a '?' (even an empty one); a
// fragment is only present when non-empty, since the parser cannot represent
// a bare trailing '#'.
func fromURL(u *url.URL) Endpoint {
	e := Endpoint{
		scheme: u.Scheme,
		user:   u.User,
		host:   u.Hostname(),
		port:   PortAbsent,
		path:   u.Path,
	}
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			e.port = n
		}
	}
	if u.ForceQuery || u.RawQuery != "" {
		q := u.RawQuery
		e.rawQuery = &q
	}
	if u.Fragment != "" {
		f := u.EscapedFragment()
		e.rawFragment = &f
	}
	return e
}

// Scheme returns the scheme component, or "" when absent.
func (e Endpoint) Scheme() string { return e.scheme }

// User returns the userinfo component, or nil when absent.
func (e Endpoint) User() *url.Userinfo { return e.user }

// Host returns the hostname without brackets or port, or "" when absent.
func (e Endpoint) Host() string { return e.host }

// Port returns the port, or PortAbsent when the address carries none.
func (e Endpoint) Port() int { return e.port }

// HostPort returns the host component in authority form, including the port
// when present and brackets for IPv6 literals.
func (e Endpoint) HostPort() string { return FormatHostPort(e.host, e.port) }

// Path returns the decoded path component, or "" when absent.
func (e Endpoint) Path() string { return e.path }

// RawQuery returns the percent-escaped query and whether a query is present.
func (e Endpoint) RawQuery() (string, bool) {
	if e.rawQuery == nil {
		return "", false
	}
	return *e.rawQuery, true
}

// Query returns the decoded query and whether a query is present. A query
// that cannot be decoded is returned in its raw form.
func (e Endpoint) Query() (string, bool) {
	if e.rawQuery == nil {
		return "", false
	}
	return unescapeComponent(*e.rawQuery), true
}

// RawFragment returns the percent-escaped fragment and whether a fragment is
// present.
func (e Endpoint) RawFragment() (string, bool) {
	if e.rawFragment == nil {
		return "", false
	}
	return *e.rawFragment, true
}

// Fragment returns the decoded fragment and whether a fragment is present.
func (e Endpoint) Fragment() (string, bool) {
	if e.rawFragment == nil {
		return "", false
	}
	return unescapeComponent(*e.rawFragment), true
}

// String reassembles the endpoint. The query and fragment are spliced in
// their raw form so the original escaping survives a round trip.
func (e Endpoint) String() string {
	u := url.URL{
		Scheme: e.scheme,
		User:   e.user,
		Host:   e.HostPort(),
		Path:   e.path,
	}
	s := u.String()
	if e.rawQuery != nil {
		s += "?" + *e.rawQuery
	}
	if e.rawFragment != nil {
		s += "#" + *e.rawFragment
	}
	return s
}

// Redacted returns the string form with any password replaced by "xxxxx",
// suitable for logging.
func (e Endpoint) Redacted() string {
	if e.user == nil {
		return e.String()
	}
	masked := e
	if _, has := e.user.Password(); has {
		masked.user = url.UserPassword(e.user.Username(), "xxxxx")
	}
	return masked.String()
}

// Equal reports whether two endpoints have identical components, including
// presence or absence of the query and fragment.
func (e Endpoint) Equal(other Endpoint) bool {
	return e.scheme == other.scheme &&
		userString(e.user) == userString(other.user) &&
		e.host == other.host &&
		e.port == other.port &&
		e.path == other.path &&
		optEqual(e.rawQuery, other.rawQuery) &&
		optEqual(e.rawFragment, other.rawFragment)
}

// FormatHostPort renders a hostname and sentinel-aware port in authority
// form. IPv6 literals are bracketed.
func FormatHostPort(host string, port int) string {
	if host == "" {
		return ""
	}
	if port >= 0 {
		return net.JoinHostPort(host, strconv.Itoa(port))
	}
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}

// unescapeComponent decodes percent-escapes without treating '+' as a space.
func unescapeComponent(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func userString(u *url.Userinfo) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func optEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
