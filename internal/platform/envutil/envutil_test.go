package envutil

import (
	"reflect"
	"testing"
)

func TestIntAndFloat(t *testing.T) {
	t.Setenv("ENVUTIL_INT", " 42 ")
	t.Setenv("ENVUTIL_BAD_INT", "forty")
	t.Setenv("ENVUTIL_FLOAT", "0.25")

	if got := Int("ENVUTIL_INT", 1, nil); got != 42 {
		t.Fatalf("Int=%d want 42", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int(bad)=%d want default 7", got)
	}
	if got := Int("ENVUTIL_MISSING", 9, nil); got != 9 {
		t.Fatalf("Int(missing)=%d want 9", got)
	}
	if got := Float("ENVUTIL_FLOAT", 1, nil); got != 0.25 {
		t.Fatalf("Float=%v want 0.25", got)
	}
}

func TestStringBlankUsesDefault(t *testing.T) {
	t.Setenv("ENVUTIL_BLANK", "   ")
	if got := String("ENVUTIL_BLANK", "fallback", nil); got != "fallback" {
		t.Fatalf("String=%q want fallback", got)
	}
	if Set("ENVUTIL_BLANK") {
		t.Fatal("blank value should not count as set")
	}
}

func TestBool(t *testing.T) {
	t.Setenv("ENVUTIL_ON", "Yes")
	t.Setenv("ENVUTIL_OFF", "0")
	t.Setenv("ENVUTIL_JUNK", "maybe")
	if !Bool("ENVUTIL_ON", false, nil) {
		t.Fatal("expected true")
	}
	if Bool("ENVUTIL_OFF", true, nil) {
		t.Fatal("expected false")
	}
	if !Bool("ENVUTIL_JUNK", true, nil) {
		t.Fatal("unparseable value should keep default")
	}
}

func TestList(t *testing.T) {
	t.Setenv("ENVUTIL_LIST", "http://a.test, ,http://b.test/ ")
	got := List("ENVUTIL_LIST", nil, nil)
	want := []string{"http://a.test", "http://b.test/"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List=%v want %v", got, want)
	}
	def := []string{"x"}
	if got := List("ENVUTIL_LIST_MISSING", def, nil); !reflect.DeepEqual(got, def) {
		t.Fatalf("List(missing)=%v", got)
	}
}
