package async_test

import (
	"errors"
	"testing"

	"github.com/wrenfold/asynctask/async"
)

func TestResultKinds(t *testing.T) {
	if !async.Empty[int]().Empty() {
		t.Fatal("Empty() result must report Empty")
	}

	v := async.Value(42)
	if v.Empty() || v.Val() != 42 || v.Err() != nil {
		t.Fatalf("unexpected Value result: %+v", v)
	}

	errBoom := errors.New("boom")
	e := async.Err[int](errBoom)
	if e.Empty() || e.Err() != errBoom {
		t.Fatalf("unexpected Error result: %+v", e)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Val() on an Error result must panic with the held error")
		}
	}()
	e.Val()
}

func TestErrNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Err(nil) must panic")
		}
	}()
	async.Err[int](nil)
}
