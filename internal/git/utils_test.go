package git

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitoutofhours/internal/testutil"
	"gitoutofhours/pkg/errors"
)

func TestValidateBranch(t *testing.T) {
	tests := []struct {
		branch string
		valid  bool
	}{
		{"", true},
		{"master", true},
		{"feature/late-night", true},
		{"release-1.2", true},
		{"-n", false},
		{"--all", false},
		{"a..b", false},
		{"has space", false},
		{"tab\there", false},
		{"head~1", false},
		{"what?", false},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			err := ValidateBranch(tt.branch)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, errors.ErrCodeBranchInvalid, errors.GetErrorCode(err))
		})
	}
}

func TestNewSource(t *testing.T) {
	dir := testutil.NewRepo(t).Dir

	src, err := NewSource("", dir)
	assert.NoError(t, err)
	assert.IsType(t, &ExecSource{}, src)

	src, err = NewSource("gogit", dir)
	assert.NoError(t, err)
	assert.IsType(t, &RepoSource{}, src)

	_, err = NewSource("svn", dir)
	assert.Error(t, err)
}
