package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected map[string]ParsedOption
	}{
		{
			name:     "no tokens",
			tokens:   nil,
			expected: map[string]ParsedOption{},
		},
		{
			name:   "bare flag",
			tokens: []string{"--verbose"},
			expected: map[string]ParsedOption{
				"verbose": {Name: "verbose", Value: true, Arity: ArityNone},
			},
		},
		{
			name:   "valued flag",
			tokens: []string{"--name=bob"},
			expected: map[string]ParsedOption{
				"name": {Name: "name", Value: "bob", Arity: ArityRequired},
			},
		},
		{
			name:   "empty equals is optional",
			tokens: []string{"--name="},
			expected: map[string]ParsedOption{
				"name": {Name: "name", Value: "", Arity: ArityOptional},
			},
		},
		{
			name:   "repeated value promotes to multi",
			tokens: []string{"--x=1", "--x=2"},
			expected: map[string]ParsedOption{
				"x": {Name: "x", Value: []string{"1", "2"}, Arity: ArityRequiredMulti},
			},
		},
		{
			name:   "three values keep sighting order",
			tokens: []string{"--x=1", "--x=2", "--x=3"},
			expected: map[string]ParsedOption{
				"x": {Name: "x", Value: []string{"1", "2", "3"}, Arity: ArityRequiredMulti},
			},
		},
		{
			name:   "empty equals then value collects both",
			tokens: []string{"--x=", "--x=2"},
			expected: map[string]ParsedOption{
				"x": {Name: "x", Value: []string{"", "2"}, Arity: ArityRequiredMulti},
			},
		},
		{
			name:   "positional and short tokens ignored",
			tokens: []string{"deploy", "-v", "prod", "--force"},
			expected: map[string]ParsedOption{
				"force": {Name: "force", Value: true, Arity: ArityNone},
			},
		},
		{
			name:   "value may contain equals",
			tokens: []string{"--filter=a=b"},
			expected: map[string]ParsedOption{
				"filter": {Name: "filter", Value: "a=b", Arity: ArityRequired},
			},
		},
		{
			name:   "zero is a value",
			tokens: []string{"--count=0"},
			expected: map[string]ParsedOption{
				"count": {Name: "count", Value: "0", Arity: ArityRequired},
			},
		},
		{
			name:   "double dash ends scanning",
			tokens: []string{"--a=1", "--", "--b=2"},
			expected: map[string]ParsedOption{
				"a": {Name: "a", Value: "1", Arity: ArityRequired},
			},
		},
		{
			name:   "many distinct options",
			tokens: []string{"--a=1", "--b=2", "--c=3", "--d=4"},
			expected: map[string]ParsedOption{
				"a": {Name: "a", Value: "1", Arity: ArityRequired},
				"b": {Name: "b", Value: "2", Arity: ArityRequired},
				"c": {Name: "c", Value: "3", Arity: ArityRequired},
				"d": {Name: "d", Value: "4", Arity: ArityRequired},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_Duplicates(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		option string
	}{
		{name: "bare flag repeated", tokens: []string{"--x", "--x"}, option: "x"},
		{name: "value then bare", tokens: []string{"--x=1", "--x"}, option: "x"},
		{name: "multi then bare", tokens: []string{"--x=1", "--x=2", "--x"}, option: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.tokens)
			require.Error(t, err)

			var dup *DuplicateOptionError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, tt.option, dup.Name)
			assert.Equal(t, "The 'x' option has already been provided.", err.Error())
		})
	}
}

func TestParse_BareThenValuedPromotes(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{name: "bare then value", tokens: []string{"--x", "--x=1"}, want: []string{"1"}},
		{name: "bare then empty", tokens: []string{"--x", "--x="}, want: []string{""}},
		{name: "bare then two values", tokens: []string{"--x", "--x=1", "--x=2"}, want: []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, ParsedOption{Name: "x", Value: tt.want, Arity: ArityRequiredMulti}, got["x"])
		})
	}
}

func TestParse_IsPure(t *testing.T) {
	tokens := []string{"--x=1", "--x=2", "--verbose", "--name=", "pos"}

	first, err := Parse(tokens)
	require.NoError(t, err)
	second, err := Parse(tokens)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"--x=1", "--x=2", "--verbose", "--name=", "pos"}, tokens)
}

func TestParse_MultiValueIsolation(t *testing.T) {
	got, err := Parse([]string{"--x=1", "--x=2"})
	require.NoError(t, err)

	values := got["x"].Values()
	values[0] = "changed"
	assert.Equal(t, []string{"1", "2"}, got["x"].Value)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		token     string
		name      string
		hasEquals bool
		value     string
		ok        bool
	}{
		{token: "--name", name: "name", ok: true},
		{token: "--name=", name: "name", hasEquals: true, ok: true},
		{token: "--name=v", name: "name", hasEquals: true, value: "v", ok: true},
		{token: "-n", ok: false},
		{token: "--", ok: false},
		{token: "value--name", ok: false},
		{token: "--dry-run", name: "dry-run", ok: true},
		{token: "---x=1", ok: false},
		{token: "--=v", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			name, hasEquals, value, ok := Split(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.hasEquals, hasEquals)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestArityString(t *testing.T) {
	assert.Equal(t, "none", ArityNone.String())
	assert.Equal(t, "optional", ArityOptional.String())
	assert.Equal(t, "required", ArityRequired.String())
	assert.Equal(t, "required-multi", ArityRequiredMulti.String())
	assert.Equal(t, "unknown", Arity(99).String())
}
