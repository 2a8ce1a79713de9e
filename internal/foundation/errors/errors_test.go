package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "layoutrender.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "layoutrender.yaml" {
			t.Errorf("expected context file=layoutrender.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Render errors fail the operation", func(t *testing.T) {
		err := RenderError("render failed").Build()
		if err.Severity() != SeverityError {
			t.Errorf("expected %s, got %s", SeverityError, err.Severity())
		}
		if err.IsFatal() {
			t.Error("render errors should not be fatal")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("original error")
	err := WrapError(originalErr, CategoryFileSystem, "read layout").
		Warning().
		WithContext("path", "_layouts/post.md").
		Build()

	if !errors.Is(err, originalErr) {
		t.Error("expected wrapped cause to be reachable through errors.Is")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("expected warning severity, got %s", err.Severity())
	}
	if got := err.Error(); got != "[filesystem:warning] read layout: original error" {
		t.Errorf("unexpected Error(): %s", got)
	}
}

func TestAsClassified_FindsWrappedError(t *testing.T) {
	inner := RenderError("render failed").Build()
	wrapped := fmt.Errorf("constructing: %w", inner)

	got, ok := AsClassified(wrapped)
	if !ok {
		t.Fatal("expected wrapped classified error to be found")
	}
	if got != inner {
		t.Error("expected the inner classified error")
	}
	if GetCategory(errors.New("plain")) != CategoryInternal {
		t.Error("plain errors default to internal category")
	}
}

func TestClassifiedError_WithContextDoesNotMutateOriginal(t *testing.T) {
	base := LayoutError("bad front matter").WithContext("path", "a.md").Build()
	derived := base.WithContext("line", 3)

	if _, ok := base.Context().Get("line"); ok {
		t.Error("original context must not change")
	}
	if v, ok := derived.Context().Get("line"); !ok || v != 3 {
		t.Errorf("expected line=3 on derived error, got %v", v)
	}
	if !errors.Is(derived, base) {
		t.Error("errors with same category and message should match")
	}
}
