package http

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/vulnguard-io/vulnguard-client/internal/constants"
)

var (
	uuidRe              = regexp.MustCompile(constants.UUIDPattern)
	legacyProjectPathRe = regexp.MustCompile("^org/" + constants.UUIDPattern + "/project/" + constants.UUIDPattern + "$")
	snakeRe             = regexp.MustCompile(`_([a-z])`)
)

// CleanPath strips the leading slash from a caller-supplied path so it can
// be joined with a base URL.
func CleanPath(path string) string {
	return strings.TrimPrefix(path, "/")
}

// IsLegacyProjectPath reports whether the path is an old-style
// org/<uuid>/project/<uuid> path that must be rewritten to its REST form.
// Only exact UUID-pattern matches qualify.
func IsLegacyProjectPath(path string) bool {
	return legacyProjectPathRe.MatchString(CleanPath(path))
}

// RewriteLegacyProjectPath rewrites org/<uuid>/project/<uuid> to
// orgs/<uuid>/projects/<uuid>. The caller must have checked
// IsLegacyProjectPath first.
func RewriteLegacyProjectPath(path string) string {
	ids := uuidRe.FindAllString(path, 2)

	return "orgs/" + ids[0] + "/projects/" + ids[1]
}

// SnakeToCamel converts a snake_case setting name to the camelCase form the
// settings endpoint expects.
func SnakeToCamel(name string) string {
	return snakeRe.ReplaceAllStringFunc(name, func(match string) string {
		return strings.ToUpper(match[1:])
	})
}

// ExtractQueryParams returns the query parameters embedded in a
// fully-qualified next link, for merging into subsequent requests.
func ExtractQueryParams(rawURL string) url.Values {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return url.Values{}
	}

	return parsed.Query()
}
