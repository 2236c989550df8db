package portal

import (
	"reflect"
	"testing"

	"github.com/tanema/gween/ease"
)

// --- Key equality ---

func TestKeyEquality(t *testing.T) {
	nsA := NewNamespace()
	nsB := NewNamespace()

	tests := []struct {
		name   string
		a, b   Key
		expect bool
	}{
		{
			"identical",
			Key{NewID("x"), RoleSource, nsA},
			Key{NewID("x"), RoleSource, nsA},
			true,
		},
		{
			"different id",
			Key{NewID("x"), RoleSource, nsA},
			Key{NewID("y"), RoleSource, nsA},
			false,
		},
		{
			"different role",
			Key{NewID("x"), RoleSource, nsA},
			Key{NewID("x"), RoleDestination, nsA},
			false,
		},
		{
			"different namespace",
			Key{NewID("x"), RoleSource, nsA},
			Key{NewID("x"), RoleSource, nsB},
			false,
		},
		{
			"int id vs string id",
			Key{NewID(1), RoleSource, nsA},
			Key{NewID("1"), RoleSource, nsA},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a == tt.b; got != tt.expect {
				t.Errorf("(%v == %v) = %v, want %v", tt.a, tt.b, got, tt.expect)
			}
		})
	}
}

func TestKeyRolesCoexistInSet(t *testing.T) {
	ns := NewNamespace()
	set := map[Key]bool{}
	set[Key{NewID("x"), RoleSource, ns}] = true
	set[Key{NewID("x"), RoleDestination, ns}] = true

	if len(set) != 2 {
		t.Fatalf("set has %d members, want 2 (source and destination must coexist)", len(set))
	}
}

// --- ID boxing ---

func TestNewIDNoDoubleWrap(t *testing.T) {
	id := NewID("hero")
	rewrapped := NewID(id)

	if rewrapped != id {
		t.Errorf("NewID(NewID(x)) = %v, want %v", rewrapped, id)
	}
	if rewrapped.Value() != "hero" {
		t.Errorf("Value() = %v, want hero", rewrapped.Value())
	}
}

func TestNewIDHeterogeneousTypes(t *testing.T) {
	a := NewID("1")
	b := NewID(1)

	if a == b {
		t.Error("string and int identifiers must not compare equal")
	}

	m := map[ID]int{a: 1, b: 2}
	if len(m) != 2 {
		t.Errorf("map has %d entries, want 2", len(m))
	}
}

func TestNewIDNotComparablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-comparable identifier")
		}
	}()
	NewID([]string{"nope"})
}

func TestIDIsZero(t *testing.T) {
	if !(ID{}).IsZero() {
		t.Error("zero ID should report IsZero")
	}
	if NewID("x").IsZero() {
		t.Error("boxed ID should not report IsZero")
	}
}

// --- Namespace ---

func TestNewNamespaceDistinct(t *testing.T) {
	a := NewNamespace()
	b := NewNamespace()
	if a == b {
		t.Error("NewNamespace returned the same token twice")
	}
	var zero Namespace
	if a == zero || b == zero {
		t.Error("allocated namespace must differ from the default")
	}
}

// --- Role ---

func TestRoleString(t *testing.T) {
	if RoleSource.String() != "source" {
		t.Errorf("RoleSource = %q", RoleSource.String())
	}
	if RoleDestination.String() != "destination" {
		t.Errorf("RoleDestination = %q", RoleDestination.String())
	}
}

// --- Animation defaults ---

func TestAnimationOrDefault(t *testing.T) {
	var zero Animation
	got := zero.or()
	if got.Duration != DefaultAnimation.Duration {
		t.Errorf("zero Animation.or().Duration = %v, want %v", got.Duration, DefaultAnimation.Duration)
	}
	if got.Ease == nil {
		t.Error("zero Animation.or().Ease is nil")
	}

	custom := Animation{Duration: 2, Ease: ease.Linear}
	through := custom.or()
	if through.Duration != custom.Duration ||
		reflect.ValueOf(through.Ease).Pointer() != reflect.ValueOf(custom.Ease).Pointer() {
		t.Error("non-zero Animation should pass through or() unchanged")
	}
}

// --- Rect ---

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Vec2
	}{
		{"origin square", Rect{0, 0, 100, 100}, Vec2{50, 50}},
		{"offset rect", Rect{200, 400, 50, 50}, Vec2{225, 425}},
		{"zero size", Rect{10, 20, 0, 0}, Vec2{10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Center(); got != tt.want {
				t.Errorf("Rect%v.Center() = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Enum constant values (catch accidental iota drift) ---

func TestEnumValues(t *testing.T) {
	if RoleSource != 0 || RoleDestination != 1 {
		t.Errorf("Role constants = %d, %d, want 0, 1", RoleSource, RoleDestination)
	}
	if RemovalNone != 0 || RemovalFade != 1 {
		t.Errorf("RemovalMode constants = %d, %d, want 0, 1", RemovalNone, RemovalFade)
	}
	if CriteriaSettled != 0 || CriteriaRemoved != 1 {
		t.Errorf("CompletionCriteria constants = %d, %d, want 0, 1", CriteriaSettled, CriteriaRemoved)
	}
	if HookLevelNone != 0 || HookLevelStyle != 1 || HookLevelFrame != 2 || HookLevelRaw != 3 {
		t.Error("HookLevel constants drifted")
	}
}

func TestColorWhite(t *testing.T) {
	if ColorWhite.R != 1 || ColorWhite.G != 1 || ColorWhite.B != 1 || ColorWhite.A != 1 {
		t.Errorf("ColorWhite = %v, want {1,1,1,1}", ColorWhite)
	}
}
