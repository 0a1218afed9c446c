// env_test.go
package lox

import "testing"

func Test_Env_DefineAndGet(t *testing.T) {
	e := NewEnv(nil)
	e.Define("x", NumVal(1))
	v, err := e.Get("x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	wantNum(t, v, 1)
}

func Test_Env_GetWalksEnclosing(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", NumVal(1))
	inner := NewEnv(outer)
	v, err := inner.Get("x")
	if err != nil {
		t.Fatalf("Get through parent: %v", err)
	}
	wantNum(t, v, 1)
}

func Test_Env_DefineShadowsWithoutTouchingOuter(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", NumVal(1))
	inner := NewEnv(outer)
	inner.Define("x", NumVal(2))

	v, _ := inner.Get("x")
	wantNum(t, v, 2)
	v, _ = outer.Get("x")
	wantNum(t, v, 1)
}

func Test_Env_SetOverwritesNearestBinding(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", NumVal(1))
	inner := NewEnv(outer)

	if err := inner.Set("x", NumVal(9)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _ := outer.Get("x")
	wantNum(t, v, 9)
}

func Test_Env_SetNeverDeclares(t *testing.T) {
	e := NewEnv(nil)
	if err := e.Set("nope", Nil); err == nil {
		t.Fatalf("Set on an unbound name must fail")
	}
	if _, err := e.Get("nope"); err == nil {
		t.Fatalf("failed Set must not create a binding")
	}
}

func Test_Env_RedefineInSameFrame(t *testing.T) {
	e := NewEnv(nil)
	e.Define("x", NumVal(1))
	e.Define("x", StrVal("two"))
	v, _ := e.Get("x")
	wantStr(t, v, "two")
}

func Test_Env_SharedFrameSeenByTwoChildren(t *testing.T) {
	shared := NewEnv(nil)
	shared.Define("n", NumVal(0))
	a := NewEnv(shared)
	b := NewEnv(shared)

	if err := a.Set("n", NumVal(5)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _ := b.Get("n")
	wantNum(t, v, 5)
}
