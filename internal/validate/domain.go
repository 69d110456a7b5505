package validate

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/opsgate/opsgate/internal/errors"
)

// Per-label and total length limits from RFC 1035.
const (
	maxLabelLen  = 63
	maxDomainLen = 255
)

// labelPattern matches a dotted sequence of DNS labels: each label is
// alphanumeric, may contain internal hyphens, and may not start or end with
// one. No leading or trailing dot, no empty labels.
var labelPattern = regexp.MustCompile(
	`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])\.)*([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9\-]*[A-Za-z0-9])$`)

// Domain validates possibly-internationalized domain names. Input is
// converted to its ASCII-compatible (punycode) form, then checked for label
// and total length, label grammar, and a registered public top-level label.
// The suffix lookup uses the public suffix list bundled with
// golang.org/x/net/publicsuffix; no network access happens at validation
// time.
//
// With Wildcard enabled, a leading "*." is stripped for the structural
// checks only; the validated value keeps the prefix.
type Domain struct {
	wildcard bool
}

// NewDomain builds a domain validator. wildcard permits a single leading
// "*." prefix.
func NewDomain(wildcard bool) *Domain {
	return &Domain{wildcard: wildcard}
}

// Name implements Validator.
func (d *Domain) Name() string { return "domain" }

// Validate implements Validator. On success the returned value is the
// ASCII-compatible form of the input, wildcard prefix intact.
func (d *Domain) Validate(raw string) (any, error) {
	ascii, err := idna.ToASCII(strings.ToLower(raw))
	if err != nil {
		return nil, errors.NewValidationError(errors.CodeInvalidEncoding, "invalid domain encoding")
	}

	// The encoded form is what gets returned; checks below may run on a
	// stripped copy.
	candidate := ascii

	checked := candidate
	if d.wildcard && strings.HasPrefix(checked, "*.") {
		checked = checked[2:]
	}

	for _, label := range strings.Split(checked, ".") {
		if len(label) > maxLabelLen {
			return nil, errors.NewValidationError(errors.CodeLabelTooLong, "domain label too long (must be <= 63)")
		}
	}
	if len(checked) > maxDomainLen {
		return nil, errors.NewValidationError(errors.CodeDomainTooLong, "domain too long (must be <= 255)")
	}

	if !labelPattern.MatchString(checked) {
		return nil, errors.NewValidationError(errors.CodeInvalidShape, "invalid domain")
	}

	tld := checked[strings.LastIndex(checked, ".")+1:]
	if suffix, icann := publicsuffix.PublicSuffix(tld); !icann || suffix != tld {
		return nil, errors.NewValidationError(errors.CodeInvalidSuffix, "invalid domain suffix")
	}

	return candidate, nil
}
