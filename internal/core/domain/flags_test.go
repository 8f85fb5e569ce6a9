package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pakt/internal/core/domain"
)

type optionMap map[string]any

func (m optionMap) GetOption(name string) any { return m[name] }

func TestNormalizeFlags_Defaults(t *testing.T) {
	flags := domain.NormalizeFlags(domain.RawFlags{Lockfile: true}, optionMap{})

	assert.True(t, flags.Lockfile)
	assert.False(t, flags.Force)
	assert.False(t, flags.Flat)
	assert.False(t, flags.IgnoreScripts)
}

func TestNormalizeFlags_ConfigForcesOn(t *testing.T) {
	cases := []struct {
		option string
		check  func(domain.EffectiveFlags) bool
	}{
		{"ignore-scripts", func(f domain.EffectiveFlags) bool { return f.IgnoreScripts }},
		{"ignore-platform", func(f domain.EffectiveFlags) bool { return f.IgnorePlatform }},
		{"ignore-engines", func(f domain.EffectiveFlags) bool { return f.IgnoreEngines }},
		{"ignore-optional", func(f domain.EffectiveFlags) bool { return f.IgnoreOptional }},
		{"force", func(f domain.EffectiveFlags) bool { return f.Force }},
	}

	for _, tc := range cases {
		t.Run(tc.option, func(t *testing.T) {
			// The raw flag is off; a truthy config option must force it on.
			flags := domain.NormalizeFlags(domain.RawFlags{}, optionMap{tc.option: true})
			if !tc.check(flags) {
				t.Errorf("option %q did not force the flag on", tc.option)
			}

			// A falsy config option must not force the flag off.
			flags = domain.NormalizeFlags(rawAllOn(), optionMap{tc.option: false})
			if !tc.check(flags) {
				t.Errorf("option %q overrode the raw flag downward", tc.option)
			}
		})
	}
}

func rawAllOn() domain.RawFlags {
	return domain.RawFlags{
		IgnoreScripts:  true,
		IgnorePlatform: true,
		IgnoreEngines:  true,
		IgnoreOptional: true,
		Force:          true,
	}
}

func TestNormalizeFlags_TruthyStrings(t *testing.T) {
	flags := domain.NormalizeFlags(domain.RawFlags{}, optionMap{"force": "true"})
	assert.True(t, flags.Force)

	flags = domain.NormalizeFlags(domain.RawFlags{}, optionMap{"force": "false"})
	assert.False(t, flags.Force)

	flags = domain.NormalizeFlags(domain.RawFlags{}, optionMap{"force": ""})
	assert.False(t, flags.Force)

	flags = domain.NormalizeFlags(domain.RawFlags{}, optionMap{"force": 1})
	assert.True(t, flags.Force)
}
