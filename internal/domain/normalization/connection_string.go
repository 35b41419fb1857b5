// Package normalization resolves user-supplied database connection strings
// into fully-specified http/https endpoints. Missing components are filled
// from a caller-supplied default endpoint; the query and fragment keep their
// original percent-escaping byte for byte.
package normalization

import (
	"fmt"
	"net/url"
	"strings"

	domainerrors "connstring/internal/domain/errors/domain"
	"connstring/internal/domain/valueobject"
)

const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"
)

// ParseConnectionString resolves connectionString against defaults and
// returns the fully-specified endpoint.
//
// The string is first parsed as-is; when that fails, or yields no host or no
// scheme (bare "host", "host:port", IPv6 literals), it is reparsed with an
// "http://" prefix. A string that parses cleanly with its own scheme must use
// http or https. The resolved path, raw query, raw fragment and port fall
// back to the corresponding component of defaults when absent; scheme,
// userinfo and host are never defaulted.
func ParseConnectionString(connectionString string, defaults valueobject.Endpoint) (valueobject.Endpoint, error) {
	resolved, err := parseWithNoScheme(connectionString)
	if err != nil {
		return valueobject.Endpoint{}, err
	}

	path := resolved.Path()
	if path == "" {
		path = defaults.Path()
	}
	rawQuery, hasQuery := resolved.RawQuery()
	if !hasQuery {
		rawQuery, hasQuery = defaults.RawQuery()
	}
	rawFragment, hasFragment := resolved.RawFragment()
	if !hasFragment {
		rawFragment, hasFragment = defaults.RawFragment()
	}
	port := resolved.Port()
	if port < 0 {
		port = defaults.Port()
	}

	// Reassemble without query and fragment first, then splice both in raw
	// form. Passing them through a URL constructor would decode escaped
	// structure characters (`&`, `=`, `#`), which later interferes with
	// parsing the attributes they carry.
	base := url.URL{
		Scheme: resolved.Scheme(),
		User:   resolved.User(),
		Host:   valueobject.FormatHostPort(resolved.Host(), port),
		Path:   path,
	}
	connStr := base.String()
	if hasQuery && rawQuery != "" {
		connStr += "?" + rawQuery
	}
	if hasFragment && rawFragment != "" {
		connStr += "#" + rawFragment
	}

	final, err := valueobject.ParseEndpoint(connStr)
	if err != nil {
		// Only reachable when defaults itself is malformed.
		return valueobject.Endpoint{}, invalidConnection(connectionString, err.Error())
	}
	return final, nil
}

// parseWithNoScheme runs the two-attempt parse and scheme whitelist check.
func parseWithNoScheme(connectionString string) (valueobject.Endpoint, error) {
	first, firstErr := valueobject.ParseEndpoint(connectionString)
	if firstErr == nil && first.Host() != "" && first.Scheme() != "" {
		// All necessary pieces are present; make sure the scheme is correct.
		if first.Scheme() != schemeHTTP && first.Scheme() != schemeHTTPS {
			return valueobject.Endpoint{}, invalidConnection(
				connectionString, "only http and https protocols are supported")
		}
		return first, nil
	}

	prefixed, err := valueobject.ParseEndpoint(schemeHTTP + "://" + connectionString)
	if err != nil {
		reason := err.Error()
		if firstErr != nil {
			reason = fmt.Sprintf("%s (parsed without scheme: %s)", reason, firstErr.Error())
		}
		return valueobject.Endpoint{}, invalidConnection(connectionString, reason)
	}
	if prefixed.Host() == "" {
		// Empty input, bare paths and the like still have no host after the
		// scheme prefix; there is nothing to connect to.
		return valueobject.Endpoint{}, invalidConnection(connectionString, "missing host")
	}
	return prefixed, nil
}

// StripQuery returns u without its query component. The fragment is always
// overwritten with the decoded fragment of defaults, even when u carried its
// own. connectionString only feeds the error message.
func StripQuery(u valueobject.Endpoint, connectionString string, defaults valueobject.Endpoint) (valueobject.Endpoint, error) {
	rebuilt := url.URL{
		Scheme: u.Scheme(),
		User:   u.User(),
		Host:   u.HostPort(),
		Path:   u.Path(),
	}
	if fragment, ok := defaults.Fragment(); ok {
		rebuilt.Fragment = fragment
	}
	stripped, err := valueobject.ParseEndpoint(rebuilt.String())
	if err != nil {
		return valueobject.Endpoint{}, invalidConnection(connectionString, err.Error())
	}
	return stripped, nil
}

// AppendSegment returns u with segment appended to its path. An empty or "/"
// segment returns u unchanged. The query and fragment are carried over in
// decoded form, so escaped structure characters in them may be normalized;
// use ParseConnectionString when the original escaping matters.
func AppendSegment(u *valueobject.Endpoint, segment string) (valueobject.Endpoint, error) {
	if u == nil {
		return valueobject.Endpoint{}, fmt.Errorf("uri must not be nil: %w", domainerrors.ErrInvalidArgument)
	}
	if segment == "" || segment == "/" {
		return *u, nil
	}

	cleanSegment := strings.TrimPrefix(segment, "/")
	path := u.Path()
	if path == "" {
		path = "/"
	}
	concatenated := path + "/" + cleanSegment
	if strings.HasSuffix(path, "/") {
		concatenated = path + cleanSegment
	}

	rebuilt := url.URL{
		Scheme: u.Scheme(),
		User:   u.User(),
		Host:   u.HostPort(),
		Path:   concatenated,
	}
	if query, ok := u.Query(); ok {
		rebuilt.RawQuery = query
	}
	if fragment, ok := u.Fragment(); ok {
		rebuilt.Fragment = fragment
	}
	appended, err := valueobject.ParseEndpoint(rebuilt.String())
	if err != nil {
		return valueobject.Endpoint{}, fmt.Errorf(
			"invalid segment [%s] for URI [%s]: %s: %w",
			segment, u.String(), err.Error(), domainerrors.ErrInvalidArgument)
	}
	return appended, nil
}

func invalidConnection(connectionString, reason string) error {
	return fmt.Errorf("%w [%s]: %s",
		domainerrors.ErrInvalidConnectionString, connectionString, reason)
}
