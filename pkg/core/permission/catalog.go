package permission

import "encoding/json"

// Entry is one capability in a tenant's permission catalog. Enabled is the
// normalized form of the wire field store_enabled.
type Entry struct {
	ID           int64  `json:"permission_id"`
	Code         string `json:"permission_code"`
	Name         string `json:"permission_name"`
	Description  string `json:"permission_description"`
	FeatureGroup string `json:"feature_group"`
	Enabled      bool   `json:"-"`
}

// Group holds the entries of one feature group, in the order the server
// listed them.
type Group struct {
	Name    string
	Entries []Entry
}

// Normalize maps the tri-state store_enabled wire value to a boolean. The
// backend sends null for permissions it has no row for, which counts as
// enabled by default; only the number 1 also counts as enabled. Strings,
// booleans and any other number are disabled.
func Normalize(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case float64:
		return t == 1
	case int:
		return t == 1
	case int64:
		return t == 1
	}
	return false
}

type wireEntry struct {
	ID           int64  `json:"permission_id"`
	Code         string `json:"permission_code"`
	Name         string `json:"permission_name"`
	Description  string `json:"permission_description"`
	FeatureGroup string `json:"feature_group"`
	StoreEnabled any    `json:"store_enabled"`
}

// LoadCatalog decodes a permission list from the envelope data. Anything
// that is not a JSON array, including null, yields an empty catalog rather
// than an error; an empty catalog is a user-visible condition of its own,
// distinct from a failed fetch.
func LoadCatalog(data json.RawMessage) []Entry {
	entries := []Entry{}
	if len(data) == 0 {
		return entries
	}

	var wire []wireEntry
	if err := json.Unmarshal(data, &wire); err != nil {
		return entries
	}

	for _, w := range wire {
		entries = append(entries, Entry{
			ID:           w.ID,
			Code:         w.Code,
			Name:         w.Name,
			Description:  w.Description,
			FeatureGroup: w.FeatureGroup,
			Enabled:      Normalize(w.StoreEnabled),
		})
	}
	return entries
}

// Toggle flips the enabled state of exactly one entry, identified by its
// permission id, and leaves every other entry untouched.
func Toggle(entries []Entry, permissionID int64) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if e.ID == permissionID {
			e.Enabled = !e.Enabled
		}
		out[i] = e
	}
	return out
}

// GroupByFeature buckets entries by feature group, keeping both the group
// order of first appearance and the per-group entry order. Entries without a
// group land in "other".
func GroupByFeature(entries []Entry) []Group {
	index := make(map[string]int)
	groups := []Group{}
	for _, e := range entries {
		name := e.FeatureGroup
		if name == "" {
			name = "other"
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

type Update struct {
	PermissionID int64 `json:"permission_id"`
	IsEnabled    bool  `json:"is_enabled"`
}

// UpdateRequest is the body of PUT /super-admin/permissions/store/{id}.
type UpdateRequest struct {
	Permissions []Update `json:"permissions"`
}

// ToUpdateRequest emits one record per catalog entry, changed or not: the
// endpoint replaces the full permission state, it does not patch deltas.
func ToUpdateRequest(entries []Entry) UpdateRequest {
	updates := make([]Update, len(entries))
	for i, e := range entries {
		updates[i] = Update{PermissionID: e.ID, IsEnabled: e.Enabled}
	}
	return UpdateRequest{Permissions: updates}
}

// IDs returns the permission ids of all entries, used when creating a store
// with a pre-selected permission set.
func IDs(entries []Entry) []int64 {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
