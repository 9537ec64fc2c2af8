package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "nestegg/pkg/domain-errors"
)

var parsers = map[string]func(string) error{
	"user":         func(s string) error { _, err := ParseUserID(s); return err },
	"contribution": func(s string) error { _, err := ParseContributionID(s); return err },
	"institution":  func(s string) error { _, err := ParseInstitutionID(s); return err },
	"fund type":    func(s string) error { _, err := ParseFundTypeID(s); return err },
	"policy":       func(s string) error { _, err := ParsePolicyID(s); return err },
}

func TestParsersRejectMalformedInput(t *testing.T) {
	inputs := map[string]string{
		"empty":             "",
		"not a uuid":        "not-a-uuid",
		"nil uuid":          uuid.Nil.String(),
		"sql fragment":      "'; DROP TABLE contributions;--",
		"path traversal":    "../../../etc/passwd",
		"embedded nul":      "550e8400\x00-e29b-41d4-a716-446655440000",
		"zero-width space":  "550e8400​-e29b-41d4-a716-446655440000",
		"oversized":         strings.Repeat("a", 1000),
		"only whitespace":   "   ",
		"truncated":         "550e8400-e29b-41d4-a716",
		"trailing garbage":  "550e8400-e29b-41d4-a716-446655440000/x",
		"contribution path": "contributions/550e8400-e29b-41d4-a716-446655440000",
	}

	for kind, parse := range parsers {
		for name, input := range inputs {
			t.Run(kind+"/"+name, func(t *testing.T) {
				err := parse(input)
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			})
		}
	}
}

func TestParsersAcceptValidUUIDs(t *testing.T) {
	for kind, parse := range parsers {
		t.Run(kind, func(t *testing.T) {
			assert.NoError(t, parse(uuid.NewString()))
			assert.NoError(t, parse("550E8400-E29B-41D4-A716-446655440000"), "uppercase")
		})
	}

	raw := uuid.New()
	got, err := ParseUserID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, UserID(raw), got)
}

func TestTypedIDsShareStringForm(t *testing.T) {
	raw := uuid.New()
	assert.Equal(t, UserID(raw).String(), ContributionID(raw).String())
	assert.Equal(t, raw.String(), SnapshotID(raw).String())
	assert.False(t, UserID(raw).IsNil())
	assert.True(t, UserID{}.IsNil())
	assert.True(t, SnapshotID{}.IsNil())
}
