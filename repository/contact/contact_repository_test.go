package contact

import (
	"reflect"
	"strings"
	"testing"

	"contacts-directory/model"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestBuildFilterQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   *model.ContactFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "no constraints",
			filter:   &model.ContactFilter{},
			wantSQL:  "",
			wantArgs: []any{},
		},
		{
			name:     "by id",
			filter:   &model.ContactFilter{ID: 10},
			wantSQL:  " AND id = ?",
			wantArgs: []any{uint64(10)},
		},
		{
			name: "public view constraints",
			filter: &model.ContactFilter{
				IsPublic:    boolPtr(true),
				IsHidden:    boolPtr(false),
				IsUserProxy: boolPtr(false),
			},
			wantSQL:  " AND is_public = ? AND is_hidden = ? AND is_user_proxy = ?",
			wantArgs: []any{true, false, false},
		},
		{
			name: "owner scope",
			filter: &model.ContactFilter{
				OwnerID:     2,
				IsUserProxy: boolPtr(false),
			},
			wantSQL:  " AND owner_id = ? AND is_user_proxy = ?",
			wantArgs: []any{uint64(2), false},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildFilterQuery(tt.filter)
			if query != getContactBase+tt.wantSQL {
				t.Fatalf("query = %q, want suffix %q", query, tt.wantSQL)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

// The listing order is part of the directory's contract: surname then name,
// case-sensitive, ties broken by insertion order. The binary collation is
// load-bearing: the MySQL defaults are case-insensitive and would sort
// "alpha" before "Beta".
func TestListOrderClause(t *testing.T) {
	if listOrderClause != " ORDER BY surname COLLATE utf8mb4_bin ASC, name COLLATE utf8mb4_bin ASC, id ASC" {
		t.Fatalf("order clause changed: %q", listOrderClause)
	}
}

func TestBuildPatchQuery(t *testing.T) {
	t.Run("empty patch produces no statement", func(t *testing.T) {
		_, _, ok := buildPatchQuery(10, &model.ContactPatch{})
		if ok {
			t.Fatalf("expected no statement for empty patch")
		}
	})

	t.Run("only patched columns appear", func(t *testing.T) {
		query, args, ok := buildPatchQuery(10, &model.ContactPatch{
			Name:    strPtr("Ana"),
			Company: strPtr("Acme"),
		})
		if !ok {
			t.Fatalf("expected a statement")
		}
		if !strings.Contains(query, "name = ?") || !strings.Contains(query, "company = ?") {
			t.Fatalf("missing patched columns: %q", query)
		}
		for _, column := range []string{"surname", "address", "phones", "email", "is_public", "is_hidden", "owner_id", "is_user_proxy"} {
			if strings.Contains(query, column+" = ?") {
				t.Fatalf("unexpected column %s in %q", column, query)
			}
		}
		if !strings.HasSuffix(query, "WHERE id = ?") {
			t.Fatalf("missing id predicate: %q", query)
		}
		if !reflect.DeepEqual(args, []any{"Ana", "Acme", uint64(10)}) {
			t.Fatalf("args = %v", args)
		}
	})

	t.Run("is_public can be patched by the owner", func(t *testing.T) {
		query, args, ok := buildPatchQuery(10, &model.ContactPatch{IsPublic: boolPtr(true)})
		if !ok {
			t.Fatalf("expected a statement")
		}
		if !strings.Contains(query, "is_public = ?") {
			t.Fatalf("missing is_public column: %q", query)
		}
		if !reflect.DeepEqual(args, []any{true, uint64(10)}) {
			t.Fatalf("args = %v", args)
		}
	})
}
