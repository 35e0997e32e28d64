package git

import (
	"strings"
	"unicode"

	"gitoutofhours/pkg/errors"
)

// ValidateBranch rejects names git would read as an option or could never
// accept as a ref. An empty name is allowed and means HEAD.
func ValidateBranch(name string) error {
	if name == "" {
		return nil
	}

	invalid := func(reason string) error {
		return errors.New(errors.ErrCodeBranchInvalid, "Invalid branch name").
			WithContext("branch", name).
			WithContext("reason", reason).
			WithSuggestions("Pass the branch name as it appears in 'git branch'")
	}

	if strings.HasPrefix(name, "-") {
		return invalid("must not start with '-'")
	}
	if strings.Contains(name, "..") {
		return invalid("must not contain '..'")
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return invalid("must not contain whitespace or control characters")
		}
		if strings.ContainsRune("~^:?*[\\", r) {
			return invalid("must not contain " + string(r))
		}
	}
	return nil
}

// IsRetrievalError reports whether err came from a log source failure
func IsRetrievalError(err error) bool {
	return errors.Is(err, errors.ErrRetrievingCommits)
}
