package gemini

import (
	"context"
	"testing"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", "model"); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestNewGeneratorDefaultsModel(t *testing.T) {
	generator, err := NewGenerator(context.Background(), "test-key", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generator.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", generator.Model())
	}
}

func TestGeneratorNilSafety(t *testing.T) {
	var generator *Generator

	if generator.Model() != "" {
		t.Fatalf("expected empty model for nil generator")
	}
	if _, err := generator.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for uninitialized generator")
	}
	if _, err := generator.EnsureJobCache(context.Background(), "j1", "", "payload"); err == nil {
		t.Fatalf("expected error for uninitialized generator")
	}
}
