package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindInvalidScalar,
				Path:   []string{"row", "symbol"},
				Detail: "unpaired high surrogate 0xD83D",
				Index:  3,
			},
			contains: []string{"[encode]", "invalid_scalar", "row.symbol", "index 3", "unpaired high surrogate 0xD83D"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindSyntax,
				Index: -1,
			},
			contains: []string{"[parse]", "syntax"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseTrack,
				Kind:   KindInvalidInput,
				Detail: "bad config",
				Index:  -1,
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[track]", "invalid_input", "bad config", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_IndexNotRendered(t *testing.T) {
	err := InvalidInput(PhaseTrack, "bad config")
	if containsSubstring(err.Error(), "index") {
		t.Errorf("unset index should not be rendered, got %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindSyntax,
		Index: -1,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidScalar,
		Index: 5,
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidScalar}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseParse, Kind: KindInvalidScalar}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindSyntax}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseEncode, Kind: KindInvalidScalar}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseParse, KindSyntax).
		Path("conf", "value").
		Index(17).
		Value("tcp").
		Cause(cause).
		Detail("expected %q, got %q", ";", ":").
		Build()

	if err.Phase != PhaseParse {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseParse)
	}
	if err.Kind != KindSyntax {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSyntax)
	}
	if len(err.Path) != 2 || err.Path[0] != "conf" || err.Path[1] != "value" {
		t.Errorf("Path = %v, want [conf value]", err.Path)
	}
	if err.Index != 17 {
		t.Errorf("Index = %v, want 17", err.Index)
	}
	if err.Value != "tcp" {
		t.Errorf("Value = %v, want tcp", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != `expected ";", got ":"` {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestBuilder_DefaultIndex(t *testing.T) {
	err := New(PhaseEncode, KindInvalidScalar).Build()
	if err.Index != -1 {
		t.Errorf("Index = %v, want -1", err.Index)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidScalar", func(t *testing.T) {
		err := InvalidScalar(PhaseEncode, "lone low surrogate", 0xDC00, 2)
		if err.Kind != KindInvalidScalar {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidScalar)
		}
		if err.Value != uint32(0xDC00) {
			t.Errorf("Value = %v, want 0xDC00", err.Value)
		}
		if err.Index != 2 {
			t.Errorf("Index = %v, want 2", err.Index)
		}
		if !containsSubstring(err.Detail, "0xDC00") {
			t.Errorf("Detail = %v, should contain the unit in hex", err.Detail)
		}
	})

	t.Run("Syntax", func(t *testing.T) {
		err := Syntax(8, "expected %q after key", "=")
		if err.Phase != PhaseParse || err.Kind != KindSyntax {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if err.Index != 8 {
			t.Errorf("Index = %v, want 8", err.Index)
		}
		if !containsSubstring(err.Detail, `"="`) {
			t.Errorf("Detail = %v, args not formatted", err.Detail)
		}
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		err := DuplicateKey(20, "addr")
		if err.Kind != KindDuplicateKey {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicateKey)
		}
		if err.Value != "addr" {
			t.Errorf("Value = %v, want addr", err.Value)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseTrack, "warn threshold must be positive")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
		if err.Index != -1 {
			t.Errorf("Index = %v, want -1", err.Index)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseParse, KindSyntax, cause, "parse conf string")
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match cause via errors.Is")
		}
	})
}

func TestScalar(t *testing.T) {
	err := InvalidScalar(PhaseEncode, "surrogate code point", 0xD800, 0)

	v, ok := Scalar(err)
	if !ok || v != 0xD800 {
		t.Errorf("Scalar = %v, %v, want 0xD800, true", v, ok)
	}

	// Works through wrapping
	wrapped := fmt.Errorf("encode row: %w", err)
	v, ok = Scalar(wrapped)
	if !ok || v != 0xD800 {
		t.Errorf("Scalar through wrap = %v, %v, want 0xD800, true", v, ok)
	}

	// Errors without a scalar
	if _, ok := Scalar(Syntax(3, "bad char")); ok {
		t.Error("Scalar should not match a syntax error")
	}
	if _, ok := Scalar(errors.New("plain")); ok {
		t.Error("Scalar should not match a plain error")
	}
}

func TestIndex(t *testing.T) {
	err := Syntax(42, "unexpected control character")

	i, ok := Index(err)
	if !ok || i != 42 {
		t.Errorf("Index = %v, %v, want 42, true", i, ok)
	}

	// Index zero is a valid position
	i, ok = Index(InvalidScalar(PhaseEncode, "lone low surrogate", 0xDFFF, 0))
	if !ok || i != 0 {
		t.Errorf("Index = %v, %v, want 0, true", i, ok)
	}

	if _, ok := Index(InvalidInput(PhaseTrack, "bad")); ok {
		t.Error("Index should not match an error without a position")
	}
	if _, ok := Index(errors.New("plain")); ok {
		t.Error("Index should not match a plain error")
	}
}

func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && containsSubstringHelper(s, substr)))
}

func containsSubstringHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
