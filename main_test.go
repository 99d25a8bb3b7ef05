package main

import "testing"

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		wantErr   bool
	}{
		{"default scene", "default", false},
		{"cover scene", "cover", false},
		{"unknown scene", "cornell", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, 16.0/9.0, 42)
			if (err != nil) != tt.wantErr {
				t.Fatalf("createScene(%q) error = %v, wantErr %v", tt.sceneType, err, tt.wantErr)
			}
			if err == nil {
				if s == nil {
					t.Fatal("Expected a scene, got nil")
				}
				if verr := s.Validate(); verr != nil {
					t.Errorf("Expected a valid scene, got %v", verr)
				}
			}
		})
	}
}
