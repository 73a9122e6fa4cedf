package types

import "testing"

func TestIsAssignable(t *testing.T) {
	hierarchy := fakeHierarchy{"Dog": "Animal", "Puppy": "Dog"}

	tests := []struct {
		name   string
		target Type
		source Type
		want   bool
	}{
		{"same primitive", Int, Int, true},
		{"integer widens to float", Flt, Int, true},
		{"float does not narrow to integer", Int, Flt, false},
		{"null assignable to string", Str, Nil, true},
		{"null not assignable to integer", Int, Nil, false},
		{"error absorbs on either side", Err, Str, true},
		{"array covariance via element rule", NewArray(Flt), NewArray(Int), true},
		{"array rejects mismatched elements", NewArray(Int), NewArray(Str), false},
		{"object same class", NewObject("Dog"), NewObject("Dog"), true},
		{"object subtype one level", NewObject("Animal"), NewObject("Dog"), true},
		{"object subtype two levels", NewObject("Animal"), NewObject("Puppy"), true},
		{"object unrelated classes", NewObject("Cat"), NewObject("Dog"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAssignable(tt.target, tt.source, hierarchy); got != tt.want {
				t.Errorf("IsAssignable(%v, %v) = %v, want %v", tt.target, tt.source, got, tt.want)
			}
		})
	}
}

func TestCommonNumeric(t *testing.T) {
	if got := CommonNumeric(Int, Int); !SameType(got, Int) {
		t.Errorf("CommonNumeric(Int, Int) = %v, want Int", got)
	}
	if got := CommonNumeric(Int, Flt); !SameType(got, Flt) {
		t.Errorf("CommonNumeric(Int, Flt) = %v, want Flt", got)
	}
	if got := CommonNumeric(Str, Int); !IsError(got) {
		t.Errorf("CommonNumeric(Str, Int) = %v, want error", got)
	}
}

func TestSameType(t *testing.T) {
	if !SameType(NewArray(Int), NewArray(Int)) {
		t.Error("expected array(integer) == array(integer)")
	}
	if SameType(NewArray(Int), NewArray(Flt)) {
		t.Error("expected array(integer) != array(float)")
	}
	if SameType(NewObject("A"), NewObject("B")) {
		t.Error("expected object(A) != object(B)")
	}
}

type fakeHierarchy map[string]string

func (h fakeHierarchy) BaseOf(class string) (string, bool) {
	base, ok := h[class]
	return base, ok
}
