package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_FirstErrorPerFieldMessages(t *testing.T) {
	v := New()
	rules := RuleSet{
		"foo":       Must("min:4"),
		"dooms-day": Must("required|date"),
	}
	data := map[string]any{"foo": "bar", "dooms-day": "not-a-date"}

	errs := First(v.Validate(data, rules, nil, nil))
	require.Len(t, errs, 2)

	assert.Equal(t, "dooms-day", errs[0].Field)
	assert.Equal(t, "date", errs[0].Rule)
	assert.Equal(t, "The --dooms-day option is not a valid date.", Format(errs[0].Message, "--dooms-day", "option"))

	assert.Equal(t, "foo", errs[1].Field)
	assert.Equal(t, "The foo argument must be at least 4 characters.", Format(errs[1].Message, "foo", "argument"))
}

func TestValidate_Passes(t *testing.T) {
	v := New()
	rules := RuleSet{
		"name":  Must("required|string|min:2|max:10"),
		"count": Must("numeric|between:1,5"),
		"mode":  Must("in:fast,slow"),
	}
	data := map[string]any{"name": "taylor", "count": 3, "mode": "fast"}

	assert.Empty(t, v.Validate(data, rules, nil, nil))
}

func TestValidate_SkipsEmptyOptionalFields(t *testing.T) {
	v := New()
	rules := RuleSet{"when": Must("date"), "path": Must("file_exists")}

	assert.Empty(t, v.Validate(map[string]any{}, rules, nil, nil))
	assert.Empty(t, v.Validate(map[string]any{"when": ""}, rules, nil, nil))
}

func TestValidate_Required(t *testing.T) {
	v := New()
	rules := RuleSet{"name": Must("required")}

	for _, value := range []any{nil, "", "   ", []string{}} {
		errs := v.Validate(map[string]any{"name": value}, rules, nil, nil)
		require.Len(t, errs, 1, "%#v", value)
		assert.Equal(t, "The :name :type is required.", errs[0].Message)
	}

	assert.Empty(t, v.Validate(map[string]any{"name": false}, rules, nil, nil))
}

func TestValidate_MessageOverrides(t *testing.T) {
	v := New()
	rules := RuleSet{"a": Must("required"), "b": Must("required")}
	messages := map[string]string{
		"a.required": "A please.",
		"required":   "Need :attribute.",
	}
	attributes := map[string]string{"b": "the bee"}

	errs := v.Validate(map[string]any{}, rules, messages, attributes)
	require.Len(t, errs, 2)
	assert.Equal(t, "A please.", errs[0].Message)
	assert.Equal(t, "Need the bee.", errs[1].Message)
}

func TestValidate_AllErrorsThenFirst(t *testing.T) {
	v := New()
	rules := RuleSet{"code": Must("alpha|min:5")}

	errs := v.Validate(map[string]any{"code": "a1"}, rules, nil, nil)
	require.Len(t, errs, 2)
	assert.Equal(t, "alpha", errs[0].Rule)
	assert.Equal(t, "min", errs[1].Rule)

	first := First(errs)
	require.Len(t, first, 1)
	assert.Equal(t, "alpha", first[0].Rule)
}

func TestSizeRules(t *testing.T) {
	tests := []struct {
		name  string
		rules string
		value any
		want  string
	}{
		{"string too short", "min:4", "bar", "The :name :type must be at least 4 characters."},
		{"string long enough", "min:3", "bar", ""},
		{"unicode counts runes", "max:3", "héé", ""},
		{"number too small", "min:10", 4, "The :name :type must be at least 10."},
		{"numeric string compared as number", "numeric|min:10", "12", ""},
		{"numeric string too big", "integer|max:10", "12", "The :name :type may not be greater than 10."},
		{"string too long", "max:2", "abc", "The :name :type may not be greater than 2 characters."},
		{"list too few", "min:2", []string{"a"}, "The :name :type must have at least 2 items."},
		{"between floats", "between:1.5,2.5", 3.0, "The :name :type must be between 1.5 and 2.5."},
		{"between string", "between:2,3", "a", "The :name :type must be between 2 and 3 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := New().Validate(map[string]any{"f": tt.value}, RuleSet{"f": Must(tt.rules)}, nil, nil)
			if tt.want == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.want, errs[len(errs)-1].Message)
		})
	}
}

func TestTypeRules(t *testing.T) {
	tests := []struct {
		rules string
		value any
		ok    bool
	}{
		{"string", "x", true},
		{"string", 1, false},
		{"numeric", "1.5", true},
		{"numeric", 7, true},
		{"numeric", "abc", false},
		{"integer", "12", true},
		{"integer", "1.5", false},
		{"integer", 12, true},
		{"boolean", "true", true},
		{"boolean", "0", true},
		{"boolean", true, true},
		{"boolean", "maybe", false},
		{"date", "2024-01-02", true},
		{"date", "not-a-date", false},
		{"alpha", "abc", true},
		{"alpha", "ab1", false},
		{"alpha_num", "ab1", true},
		{"alpha_dash", "ab-1_c", true},
		{"alpha_dash", "ab c", false},
		{"in:a,b", "b", true},
		{"in:a,b", "c", false},
		{"not_in:a,b", "c", true},
		{"starts_with:foo,bar", "barn", true},
		{"starts_with:foo", "nope", false},
		{"ends_with:.yaml,.yml", "c.yml", true},
		{"regex:/^[a-z]+$/", "abc", true},
		{"regex:^[a-z]+$", "ABC", false},
	}

	for _, tt := range tests {
		t.Run(tt.rules, func(t *testing.T) {
			errs := New().Validate(map[string]any{"f": tt.value}, RuleSet{"f": Must(tt.rules)}, nil, nil)
			assert.Equal(t, tt.ok, len(errs) == 0, "%v against %s: %v", tt.value, tt.rules, errs)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, spec := range []string{"bogus", "min", "min:x", "between:1", "in", "regex:("} {
		_, err := Parse(spec)
		assert.Error(t, err, spec)
	}
}

func TestMust_AppendsExtraRules(t *testing.T) {
	rules := Must("required", FileExists("custom"))
	require.Len(t, rules, 2)
	assert.Equal(t, "file_exists", rules[1].Name())

	assert.Panics(t, func() { Must("nope") })
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "The dooms day is not a valid date.", Format("The :name :type is not a valid date.", "dooms day", ""))
	assert.Equal(t, "The --x option is required.", Format("The :name :type is required.", "--x", "option"))
}

func TestCheck_CustomRule(t *testing.T) {
	even := Check("even", "The :name :type must be even.", func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})

	errs := New().Validate(map[string]any{"n": 3}, RuleSet{"n": {even}}, nil, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "even", errs[0].Rule)
}
