package permission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "null", value: nil, want: true},
		{name: "number one", value: float64(1), want: true},
		{name: "number zero", value: float64(0), want: false},
		{name: "number two", value: float64(2), want: false},
		{name: "string one", value: "1", want: false},
		{name: "boolean true", value: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.value))
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	data := json.RawMessage(`[
		{"permission_id":1,"permission_code":"orders.view","permission_name":"View Orders","feature_group":"orders","store_enabled":1},
		{"permission_id":2,"permission_code":"orders.cancel","permission_name":"Cancel Orders","feature_group":"orders","store_enabled":0},
		{"permission_id":3,"permission_code":"reports.view","permission_name":"View Reports","feature_group":"reports","store_enabled":null}
	]`)

	entries := LoadCatalog(data)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Enabled)
	assert.False(t, entries[1].Enabled)
	assert.True(t, entries[2].Enabled, "absent backend row counts as enabled")
	assert.Equal(t, "orders.cancel", entries[1].Code)
}

func TestLoadCatalogTolerantShapes(t *testing.T) {
	tests := []struct {
		name string
		data json.RawMessage
	}{
		{name: "null", data: json.RawMessage(`null`)},
		{name: "empty array", data: json.RawMessage(`[]`)},
		{name: "object instead of array", data: json.RawMessage(`{"oops":true}`)},
		{name: "empty input", data: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := LoadCatalog(tt.data)
			require.NotNil(t, entries)
			assert.Empty(t, entries)
		})
	}
}

func TestToggle(t *testing.T) {
	entries := []Entry{
		{ID: 1, Enabled: true},
		{ID: 2, Enabled: true},
	}

	toggled := Toggle(entries, 2)
	assert.True(t, toggled[0].Enabled)
	assert.False(t, toggled[1].Enabled)
	assert.True(t, entries[1].Enabled, "input slice must not change")

	// Unknown id leaves everything alone.
	same := Toggle(entries, 99)
	assert.Equal(t, entries, same)
}

func TestGroupByFeaturePreservesOrder(t *testing.T) {
	entries := []Entry{
		{ID: 1, FeatureGroup: "orders"},
		{ID: 2, FeatureGroup: ""},
		{ID: 3, FeatureGroup: "orders"},
	}

	groups := GroupByFeature(entries)
	require.Len(t, groups, 2)

	assert.Equal(t, "orders", groups[0].Name)
	require.Len(t, groups[0].Entries, 2)
	assert.Equal(t, int64(1), groups[0].Entries[0].ID)
	assert.Equal(t, int64(3), groups[0].Entries[1].ID)

	assert.Equal(t, "other", groups[1].Name)
	require.Len(t, groups[1].Entries, 1)
	assert.Equal(t, int64(2), groups[1].Entries[0].ID)
}

func TestToUpdateRequestIsFullReplace(t *testing.T) {
	entries := []Entry{
		{ID: 1, Enabled: true},
		{ID: 2, Enabled: false},
		{ID: 3, Enabled: true},
	}

	req := ToUpdateRequest(entries)
	require.Len(t, req.Permissions, 3, "every entry goes out, not just changed ones")
	assert.Equal(t, Update{PermissionID: 2, IsEnabled: false}, req.Permissions[1])

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"permissions":[
		{"permission_id":1,"is_enabled":true},
		{"permission_id":2,"is_enabled":false},
		{"permission_id":3,"is_enabled":true}
	]}`, string(data))
}

func TestIDs(t *testing.T) {
	entries := []Entry{{ID: 4}, {ID: 7}}
	assert.Equal(t, []int64{4, 7}, IDs(entries))
}
