package nscache

import "testing"

func TestQueryTokens(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"zero value", Query{}, "p0:s0:unsorted"},
		{"paged desc", Query{Page: 2, Size: 20, Sort: Sort{Field: "savedAt", Desc: true}}, "p2:s20:savedAt_DESC"},
		{"paged asc", Query{Size: 10, Sort: Sort{Field: "name"}}, "p0:s10:name_ASC"},
		{"negative page and size", Query{Page: -3, Size: -1}, "p0:s0:unsorted"},
		{"desc without field is unsorted", Query{Sort: Sort{Desc: true}}, "p0:s0:unsorted"},
		{"field with separator", Query{Sort: Sort{Field: "meta:ts"}}, "p0:s0:meta%3Ats_ASC"},
		{"field with escape char", Query{Sort: Sort{Field: "a%b"}}, "p0:s0:a%25b_ASC"},
	}
	for _, tt := range tests {
		if got := tt.q.token(); got != tt.want {
			t.Errorf("%s: token = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSortTokenDirection(t *testing.T) {
	if got := (Sort{Field: "ts"}).token(); got != "ts_ASC" {
		t.Errorf("asc token = %q", got)
	}
	if got := (Sort{Field: "ts", Desc: true}).token(); got != "ts_DESC" {
		t.Errorf("desc token = %q", got)
	}
	if got := (Sort{}).token(); got != "unsorted" {
		t.Errorf("empty token = %q", got)
	}
}
