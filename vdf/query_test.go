package vdf

import (
	"context"
	"errors"
	"testing"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected any
	}{
		{"member", "AppState.name", "Team Fortress 2"},
		{"index", `AppState["UserConfig"].language`, "english"},
		{"compare", `AppState.appid == "440"`, true},
		{"len", "len(AppState)", 3},
		{"coalesce", `AppState.missing ?? "none"`, "none"},
		{"env", `$env["AppState"]["appid"]`, "440"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Query(context.Background(), sampleTree(), tt.source)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("Query(%q) = %v (%T), want %v (%T)",
					tt.source, got, got, tt.expected, tt.expected)
			}
		})
	}
}

func TestQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"syntax", "AppState.("},
		{"unknown name", "Nothing.here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Query(context.Background(), sampleTree(), tt.source)
			if !errors.Is(err, ErrQuery) {
				t.Errorf("expected ErrQuery, got %v", err)
			}
		})
	}
}

func TestQuery_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Query(ctx, sampleTree(), "1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
