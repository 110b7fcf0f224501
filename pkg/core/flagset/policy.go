package flagset

// EnforceBillingStatus returns a copy with every feature flag forced off
// unless billing is active. The server does not enforce this relationship;
// callers that want to must apply it explicitly before saving.
func EnforceBillingStatus(fs FlagSet) FlagSet {
	if fs.BillingStatus == BillingActive {
		return fs.Clone()
	}
	out := fs.Clone()
	for _, name := range FlagNames {
		out.Flags[name] = false
	}
	return out
}
