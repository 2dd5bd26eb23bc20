package net

import (
	"context"
	"testing"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if RequestID(ctx) != "" {
		t.Fatalf("expected empty request id")
	}
	if got := RequestID(WithRequestID(ctx, "rid-1")); got != "rid-1" {
		t.Fatalf("RequestID = %q", got)
	}
	if WithRequestID(ctx, "") != ctx {
		t.Fatalf("blank id should not derive a context")
	}
}

func TestUserID(t *testing.T) {
	ctx := WithUser(context.Background(), "u-7")
	if got := UserID(ctx); got != "u-7" {
		t.Fatalf("UserID = %q", got)
	}
	if UserID(context.Background()) != "" {
		t.Fatalf("expected empty user id")
	}
}
