package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slugForm struct {
	Slug string `json:"slug" validate:"required,slug"`
}

type planForm struct {
	Plan  string `json:"plan" validate:"required,plan"`
	Cycle string `json:"cycle" validate:"required,cycle"`
}

func TestSlugRule(t *testing.T) {
	v := New()

	valid := []string{"asha", "asha-rao", "a1b", "my-card-2026", strings.Repeat("a", 32)}
	for _, s := range valid {
		assert.NoError(t, v.Validate(&slugForm{Slug: s}), s)
	}

	invalid := []string{
		"ab",                    // too short
		strings.Repeat("a", 33), // too long
		"-leading",
		"trailing-",
		"UPPER", // uppercase collides with the activation code alphabet
		"has space",
		"under_score",
		"émoji",
	}
	for _, s := range invalid {
		assert.Error(t, v.Validate(&slugForm{Slug: s}), s)
	}
}

func TestSlugErrorUsesJSONFieldName(t *testing.T) {
	v := New()

	err := v.Validate(&slugForm{Slug: "NO"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "slug")
}

func TestPlanAndCycleRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&planForm{Plan: "elite", Cycle: "monthly"}))
	assert.NoError(t, v.Validate(&planForm{Plan: "novice", Cycle: "quarterly"}))
	assert.Error(t, v.Validate(&planForm{Plan: "gold", Cycle: "monthly"}))
	assert.Error(t, v.Validate(&planForm{Plan: "elite", Cycle: "yearly"}))
}

func TestRequiredMessage(t *testing.T) {
	v := New()

	err := v.Validate(&planForm{})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This field is required", vErr.Errors["plan"])
}
