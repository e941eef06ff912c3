package validator

import (
	"net"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// labelPattern matches a lowercase DNS label: alphanumerics and
	// inner hyphens, at most 63 characters.
	labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

	// usernamePattern matches GitHub usernames: alphanumerics with
	// single inner hyphens. Length is checked separately.
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](-?[a-zA-Z0-9])*$`)

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	cnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]{0,253}[a-zA-Z0-9])?$`)
)

// foldLower lowercases s with full Unicode case mapping, so labels
// submitted with non-ASCII uppercase letters fold consistently before
// the syntax check.
func foldLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ValidLabel reports whether name is an acceptable subdomain label.
// "@" denotes the apex and is always accepted; other names are folded
// to lowercase before matching.
func ValidLabel(name string) bool {
	if name == "@" {
		return true
	}
	return labelPattern.MatchString(foldLower(name))
}

// ValidIPv4 reports whether s is a literal IPv4 address.
func ValidIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Contains(s, ".")
}

// ValidIPv6 reports whether s is a literal IPv6 address.
func ValidIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

// ValidGitHubUsername reports whether s is a well-formed GitHub
// username (at most 39 characters, no leading, trailing or doubled
// hyphens).
func ValidGitHubUsername(s string) bool {
	return len(s) > 0 && len(s) <= 39 && usernamePattern.MatchString(s)
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validCNAMETarget reports whether s is an acceptable CNAME record
// target: either a fully qualified name ending in a dot or a plain
// hostname.
func validCNAMETarget(s string) bool {
	return strings.HasSuffix(s, ".") || cnamePattern.MatchString(s)
}

// reserved reports whether sub appears in the configured reserved
// subdomain list, compared case-insensitively.
func (c *Config) reserved(sub string) bool {
	folded := foldLower(sub)
	for _, r := range c.ReservedSubdomains {
		if foldLower(r) == folded {
			return true
		}
	}
	return false
}
