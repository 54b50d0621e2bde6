package either_test

import (
	"errors"
	"testing"

	"github.com/deckhouse/kafka-topic-operator/internal/either"
)

func TestPartitionedByError(t *testing.T) {
	items := []string{"a", "b", "c"}
	errB := errors.New("b failed")

	got := either.PartitionedByError(items, func(s string) either.Either[int] {
		if s == "b" {
			return either.Err[int](errB)
		}
		return either.Ok(len(s))
	})

	if len(got.Successes) != 2 || len(got.Failures) != 1 {
		t.Fatalf("got %d successes, %d failures", len(got.Successes), len(got.Failures))
	}
	if got.Failures[0].Item != "b" || got.Failures[0].Err != errB {
		t.Fatalf("unexpected failure entry: %+v", got.Failures[0])
	}
}

func TestOutcomesErrorsWin(t *testing.T) {
	o := either.NewOutcomes[string]()

	o.Succeed("t1")
	o.Fail("t1", errors.New("later stage failed"))

	res, ok := o.Get("t1")
	if !ok {
		t.Fatal("expected outcome to be recorded")
	}
	if res.IsOk() {
		t.Fatal("expected error to win over an earlier success")
	}

	o.Fail("t2", errors.New("first failure"))
	o.Succeed("t2")

	res2, _ := o.Get("t2")
	if res2.IsOk() {
		t.Fatal("expected a later success not to override an earlier error")
	}
}

func TestOutcomesItemsPreservesOrder(t *testing.T) {
	o := either.NewOutcomes[string]()
	o.Succeed("t2")
	o.Succeed("t1")
	o.Fail("t3", errors.New("boom"))

	want := []string{"t2", "t1", "t3"}
	got := o.Items()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
