package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantLabel  Label
		wantWeight float64
	}{
		{name: "empty", in: "", wantLabel: NotTested, wantWeight: 0.0},
		{name: "whitespace only", in: "   \t", wantLabel: NotTested, wantWeight: 0.0},
		{name: "pass prefix", in: "PASS (manual)", wantLabel: Effective, wantWeight: 1.0},
		{name: "passed", in: "passed", wantLabel: Effective, wantWeight: 1.0},
		{name: "effective exact", in: "Effective", wantLabel: Effective, wantWeight: 1.0},
		{name: "ok exact", in: "ok", wantLabel: Effective, wantWeight: 1.0},
		{name: "success exact", in: "Success", wantLabel: Effective, wantWeight: 1.0},
		{name: "nok", in: "NOK", wantLabel: Ineffective, wantWeight: 0.5},
		{name: "fail exact", in: "fail", wantLabel: Ineffective, wantWeight: 0.5},
		{name: "failed exact", in: "Failed", wantLabel: Ineffective, wantWeight: 0.5},
		{name: "ineffective exact", in: "ineffective", wantLabel: Ineffective, wantWeight: 0.5},
		{name: "trimmed before matching", in: "  fail  ", wantLabel: Ineffective, wantWeight: 0.5},
		// Not a prefix match for "fail": exact matches only on the
		// ineffective list, so this falls through to the default.
		{name: "failure is not an exact match", in: "failure", wantLabel: NotTested, wantWeight: 0.0},
		{name: "partially effective falls through", in: "partially effective", wantLabel: NotTested, wantWeight: 0.0},
		{name: "unrecognized text", in: "pending review", wantLabel: NotTested, wantWeight: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, weight := Classify(tt.in)
			if label != tt.wantLabel || weight != tt.wantWeight {
				t.Errorf("Classify(%q) = (%s, %v), want (%s, %v)",
					tt.in, label, weight, tt.wantLabel, tt.wantWeight)
			}
		})
	}
}

// The taxonomy is closed under round-trips: feeding a label back into the
// classifier yields that label again.
func TestClassify_Closure(t *testing.T) {
	for _, label := range Labels {
		got, weight := Classify(string(label))
		if got != label {
			t.Errorf("Classify(%q) = %s, want %s", label, got, label)
		}
		if weight != label.Weight() {
			t.Errorf("Classify(%q) weight = %v, want %v", label, weight, label.Weight())
		}
	}
}

func TestLabelWeight(t *testing.T) {
	if Effective.Weight() != 1.0 {
		t.Errorf("Effective weight = %v, want 1.0", Effective.Weight())
	}
	// 0.5, not 0: Ineffective outranks Not Tested in weighted aggregations.
	if Ineffective.Weight() != 0.5 {
		t.Errorf("Ineffective weight = %v, want 0.5", Ineffective.Weight())
	}
	if NotTested.Weight() != 0.0 {
		t.Errorf("NotTested weight = %v, want 0.0", NotTested.Weight())
	}
}
