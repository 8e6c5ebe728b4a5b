package schema

import (
	"testing"

	"github.com/soxboard/soxboard/internal/model"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already normalized", in: "mics id", want: "mics id"},
		{name: "uppercase", in: "MICS ID", want: "mics id"},
		{name: "surrounding whitespace", in: "  Control Owner \t", want: "control owner"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.in); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveFields_AliasPriority(t *testing.T) {
	fields := []model.Field{
		{Name: "MICS ID", Aliases: []string{"mics id", "micsid", "mics"}},
	}

	tests := []struct {
		name    string
		headers []string
		want    int
	}{
		{
			// Both aliases present: the first alias wins even though
			// "micsid" appears earlier in the header order.
			name:    "first alias wins",
			headers: []string{"micsid", "MICS ID"},
			want:    1,
		},
		{
			name:    "fallback alias",
			headers: []string{"Owner", "micsid"},
			want:    1,
		},
		{
			name:    "last resort alias",
			headers: []string{"MICS", "Owner"},
			want:    0,
		},
		{
			name:    "no alias present",
			headers: []string{"Owner", "Zone"},
			want:    -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := ResolveFields(tt.headers, fields)
			if got := resolved["MICS ID"]; got != tt.want {
				t.Errorf("resolved MICS ID to column %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveFields_SkipsConsolidatedFields(t *testing.T) {
	fields := []model.Field{
		{Name: "Root Cause", Group: &model.Group{Tokens: []string{"root", "cause"}}},
	}

	resolved := ResolveFields([]string{"Root Cause"}, fields)
	if _, ok := resolved["Root Cause"]; ok {
		t.Error("consolidated field should not resolve to a single column")
	}
}

func TestDropProtectedColumns(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		wantHeaders []string
	}{
		{
			name:        "drops marker prefix",
			headers:     []string{"MICS ID", "(Não Modificar) Lookup", "Status"},
			wantHeaders: []string{"MICS ID", "Status"},
		},
		{
			name:        "drops ascii-folded marker",
			headers:     []string{"(Nao Modificar) Hidden", "Owner"},
			wantHeaders: []string{"Owner"},
		},
		{
			name:        "marker is a prefix rule",
			headers:     []string{"Notes (Não Modificar)", "Owner"},
			wantHeaders: []string{"Notes (Não Modificar)", "Owner"},
		},
		{
			name:        "nothing to drop",
			headers:     []string{"MICS ID", "Status"},
			wantHeaders: []string{"MICS ID", "Status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.NewTable(tt.headers)
			row := make([]string, len(tt.headers))
			for i := range row {
				row[i] = tt.headers[i] + "-value"
			}
			in.AppendRow(row)

			got := DropProtectedColumns(in)
			if len(got.Headers) != len(tt.wantHeaders) {
				t.Fatalf("got headers %v, want %v", got.Headers, tt.wantHeaders)
			}
			for i, h := range tt.wantHeaders {
				if got.Headers[i] != h {
					t.Errorf("header %d = %q, want %q", i, got.Headers[i], h)
				}
				if want := h + "-value"; got.Cell(0, i) != want {
					t.Errorf("cell %d = %q, want %q", i, got.Cell(0, i), want)
				}
			}
		})
	}
}

func TestCanonicalize_BackfillsMissingColumns(t *testing.T) {
	raw := model.NewTable([]string{"micsid", "Something Else"})
	raw.AppendRow([]string{"M-001", "x"})

	got := Canonicalize(raw, model.Controls)

	if len(got.Headers) != len(model.Controls.Schema) {
		t.Fatalf("canonical table has %d columns, want %d", len(got.Headers), len(model.Controls.Schema))
	}
	if idx := got.ColumnIndex("MICS ID"); got.Cell(0, idx) != "M-001" {
		t.Errorf("MICS ID = %q, want M-001", got.Cell(0, idx))
	}
	// Unmatched canonical fields backfill as empty strings, never error.
	for _, name := range []string{"IT Solution", "Control Owner", "Control Status", "Root Cause"} {
		if v := got.Cell(0, got.ColumnIndex(name)); v != "" {
			t.Errorf("%s = %q, want empty backfill", name, v)
		}
	}
}

func TestCanonicalize_DoesNotMutateInput(t *testing.T) {
	raw := model.NewTable([]string{"MICS ID", "(Não Modificar) Hidden"})
	raw.AppendRow([]string{"M-001", "secret"})

	_ = Canonicalize(raw, model.Controls)

	if len(raw.Headers) != 2 || raw.Cell(0, 1) != "secret" {
		t.Error("input table was mutated")
	}
}
