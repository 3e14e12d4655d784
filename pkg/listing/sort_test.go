package listing

import "testing"

func TestResolveSort(t *testing.T) {
	allowed := map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
	}

	cases := []struct {
		name       string
		sortBy     string
		sortOrder  string
		wantClause string
	}{
		{name: "known field", sortBy: "email", sortOrder: "desc", wantClause: "email desc"},
		{name: "camelCase mapping", sortBy: "createdAt", sortOrder: "asc", wantClause: "created_at asc"},
		{name: "unknown field falls back", sortBy: "password_hash", sortOrder: "asc", wantClause: "name asc"},
		{name: "injection attempt falls back", sortBy: "name; DROP TABLE users--", sortOrder: "asc", wantClause: "name asc"},
		{name: "empty input", sortBy: "", sortOrder: "", wantClause: "name asc"},
		{name: "bad order defaults asc", sortBy: "name", sortOrder: "sideways", wantClause: "name asc"},
		{name: "order is case-insensitive", sortBy: "name", sortOrder: "DESC", wantClause: "name desc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sort := ResolveSort(allowed, tc.sortBy, tc.sortOrder)
			if got := sort.Clause(); got != tc.wantClause {
				t.Fatalf("expected clause %q, got %q", tc.wantClause, got)
			}
		})
	}
}

func TestResolveSortAliasedDefault(t *testing.T) {
	allowed := map[string]string{
		"name":  "s.name",
		"email": "s.email",
	}
	sort := ResolveSort(allowed, "owner_id", "desc")
	if got := sort.Clause(); got != "s.name desc" {
		t.Fatalf("expected aliased default, got %q", got)
	}
}

func TestSubstringPattern(t *testing.T) {
	if got := SubstringPattern("  TeCh "); got != "%tech%" {
		t.Fatalf("expected %%tech%%, got %q", got)
	}
	if got := SubstringPattern(""); got != "%%" {
		t.Fatalf("expected %%%%, got %q", got)
	}
}

func TestSortClauseZeroValue(t *testing.T) {
	var sort Sort
	if got := sort.Clause(); got != "name asc" {
		t.Fatalf("expected default clause, got %q", got)
	}
}
