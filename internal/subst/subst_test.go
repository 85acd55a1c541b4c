package subst

import (
	"reflect"
	"testing"
)

func TestExpandArgs(t *testing.T) {
	got := ExpandArgs([]string{"cat", "{path}"}, map[string]string{"path": "docs/README.md"})
	want := []string{"cat", "docs/README.md"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandEnv(t *testing.T) {
	got := ExpandEnv([]string{"echo", "$GREETING"}, map[string]string{"GREETING": "hello"})
	want := []string{"echo", "hello"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandUnknownKeysLeftUntouched(t *testing.T) {
	got := ExpandArgs([]string{"cat", "{missing}"}, map[string]string{"path": "x"})
	want := []string{"cat", "{missing}"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandOrderArgsBeforeEnv(t *testing.T) {
	// Args expand first, producing a literal "$NAME" in the word; the env
	// pass then runs once over that result and replaces it. This pins down
	// the fixed pass order (args then env), not a claim that env values are
	// immune from matching text introduced by the args pass.
	got := Expand(
		[]string{"echo", "{msg}"},
		map[string]string{"msg": "$NAME"},
		map[string]string{"NAME": "expanded-by-env"},
	)
	want := []string{"echo", "expanded-by-env"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpandNoValuesReturnsCopy(t *testing.T) {
	in := []string{"ls", "-la"}
	got := ExpandArgs(in, nil)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %v, want %v", got, in)
	}
	got[0] = "mutated"
	if in[0] == "mutated" {
		t.Fatal("expected Expand to return a fresh slice, not alias the input")
	}
}

func TestDetectAmbiguousKeysPrefixEnvKeys(t *testing.T) {
	err := DetectAmbiguousKeys(map[string]string{"NAME": "a", "NAMESPACE": "b"})
	if err == nil {
		t.Fatal("expected error for prefix-overlapping env keys")
	}
}

func TestDetectAmbiguousKeysDistinctEnvKeys(t *testing.T) {
	if err := DetectAmbiguousKeys(map[string]string{"USER": "a", "HOME": "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
