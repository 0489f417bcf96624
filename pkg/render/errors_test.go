package render_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-render/pkg/render"
)

func TestError_MessageOnly(t *testing.T) {
	err := render.NewError("template missing")
	if got := err.Error(); got != "template missing" {
		t.Fatalf("unexpected message: %q", got)
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected no cause")
	}
}

func TestError_CauseOnly(t *testing.T) {
	cause := errors.New("disk gone")
	err := render.Wrap(cause)
	if got := err.Error(); got != "disk gone" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
}

func TestError_MessageAndCause(t *testing.T) {
	cause := errors.New("parse failed")
	err := render.WrapMessage("render hello.tpl", cause)
	if got := err.Error(); got != "render hello.tpl: parse failed" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
}

func TestError_Empty(t *testing.T) {
	err := &render.Error{}
	if got := err.Error(); got != "render failed" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestError_AsThroughWrapping(t *testing.T) {
	inner := render.WrapMessage("inner", errors.New("boom"))
	outer := fmt.Errorf("handler: %w", inner)

	var re *render.Error
	if !errors.As(outer, &re) {
		t.Fatalf("expected errors.As to find *render.Error")
	}
	if re.Message != "inner" {
		t.Fatalf("unexpected message: %q", re.Message)
	}
}
