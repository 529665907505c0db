package model

import (
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestToPageIsTotal(t *testing.T) {
	inputs := map[string]interface{}{
		"nil":          nil,
		"empty object": map[string]interface{}{},
		"number":       decode(t, `42`),
		"string":       decode(t, `"hello"`),
		"array":        decode(t, `[1,2,3]`),
		"wrong types":  decode(t, `{"meta":"x","sections":{"a":1},"html":7}`),
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			page := ToPage(raw)
			require.NotNil(t, page)
			assert.Equal(t, DefaultTitle, page.Meta.Title)
			assert.Equal(t, "", page.Meta.Description)
			assert.NotNil(t, page.Sections)
			assert.Empty(t, page.Sections)
			assert.Equal(t, PlaceholderHTML, page.HTML)
		})
	}
}

func TestToPageFillsOnlyMissingMetaField(t *testing.T) {
	page := ToPage(decode(t, `{"meta":{"description":"d"}}`))
	assert.Equal(t, DefaultTitle, page.Meta.Title)
	assert.Equal(t, "d", page.Meta.Description)

	page = ToPage(decode(t, `{"meta":{"title":"T"}}`))
	assert.Equal(t, "T", page.Meta.Title)
	assert.Equal(t, "", page.Meta.Description)
}

func TestToPageKeepsSectionOrder(t *testing.T) {
	raw := decode(t, `{
		"sections": [
			{"id":"hero","title":"Hero","html":"<h1>Hi</h1>"},
			"garbage",
			{"id":"cta","title":5,"html":"<p>Call</p>"}
		],
		"html": "<main></main>"
	}`)

	page := ToPage(raw)
	require.Len(t, page.Sections, 3)
	assert.Equal(t, Section{ID: "hero", Title: "Hero", HTML: "<h1>Hi</h1>"}, page.Sections[0])
	assert.Equal(t, Section{}, page.Sections[1])
	assert.Equal(t, Section{ID: "cta", HTML: "<p>Call</p>"}, page.Sections[2])
	assert.Equal(t, "<main></main>", page.HTML)
}

func TestPageJSONAlwaysHasSections(t *testing.T) {
	data, err := json.Marshal(ToPage(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":{"title":"Generated Page","description":""},"sections":[],"html":"<main><h1>Generated Page</h1></main>"}`, string(data))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleAgent, false},
		{"agent", RoleAgent, false},
		{" Loan ", RoleLoan, false},
		{"profile", RoleProfile, false},
		{"broker", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseRoleErrorCarriesStack(t *testing.T) {
	_, err := ParseRole("broker")
	require.Error(t, err)

	unpacked := eris.Unpack(err)
	assert.Nil(t, unpacked.ErrExternal)
	assert.Equal(t, err.Error(), unpacked.ErrRoot.Msg)
	assert.NotEmpty(t, unpacked.ErrRoot.Stack)
	assert.Contains(t, err.Error(), `unknown role "broker"`)
}
