package naming

import (
	"errors"
	"reflect"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"trainers", []string{"trainers"}},
		{"trainer-profiles", []string{"trainer", "profiles"}},
		{"trainer_profiles", []string{"trainer", "profiles"}},
		{"trainer profiles", []string{"trainer", "profiles"}},
		{"trainerProfiles", []string{"trainer", "Profiles"}},
		{"TrainerProfiles", []string{"Trainer", "Profiles"}},
		{"XMLHttpRequest", []string{"XML", "Http", "Request"}},
		{"abc123", []string{"abc", "123"}},
		{"v2Api", []string{"v", "2", "Api"}},
		{"--foo--bar--", []string{"foo", "bar"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Words(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Words(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"trainers", "trainers"},
		{"trainer-profiles", "trainerProfiles"},
		{"Trainer Profiles", "trainerProfiles"},
		{"TrainerProfiles", "trainerProfiles"},
		{"TRAINERS", "trainers"},
		{"Trainer", "trainer"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CamelCase(tt.input); got != tt.expected {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestStartCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"firstName", "First Name"},
		{"trainer-profiles", "Trainer Profiles"},
		{"email", "Email"},
		{"API key", "API Key"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StartCase(tt.input); got != tt.expected {
			t.Errorf("StartCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"trainer", "Trainer"},
		{"Trainer", "Trainer"},
		{"t", "T"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := UpperFirst(tt.input); got != tt.expected {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBaseSegment(t *testing.T) {
	tests := []struct {
		route   string
		want    string
		wantErr bool
	}{
		{"/trainers", "trainers", false},
		{"/trainers/:id", "trainers", false},
		{"/trainer-profiles", "trainer-profiles", false},
		{"trainers/list", "list", false},
		{"invalid", "", true},
		{"", "", true},
		{"/", "", true},
		{"//x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			got, err := BaseSegment(tt.route)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedRoute) {
					t.Errorf("BaseSegment(%q) error = %v, want ErrMalformedRoute", tt.route, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BaseSegment(%q) unexpected error: %v", tt.route, err)
			}
			if got != tt.want {
				t.Errorf("BaseSegment(%q) = %q, want %q", tt.route, got, tt.want)
			}
		})
	}
}

func TestPluralDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"trainers", "Trainers"},
		{"trainer-profiles", "TrainerProfiles"},
		{"trainerProfiles", "TrainerProfiles"},
		{"status", "Status"},
	}

	for _, tt := range tests {
		if got := PluralDisplayName(tt.input); got != tt.expected {
			t.Errorf("PluralDisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSingularDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Trainers", "Trainer"},
		{"TrainerProfiles", "TrainerProfile"},
		{"Staff", "Staff"},
		{"Classes", "Classe"},
		// Known limitation: trailing "s" is always dropped.
		{"Status", "Statu"},
		{"s", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SingularDisplayName(tt.input); got != tt.expected {
			t.Errorf("SingularDisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEntityRouteName(t *testing.T) {
	tests := []struct {
		route    string
		detail   bool
		expected string
	}{
		{"/trainers", false, "trainers"},
		{"/trainers/:id", true, "trainersDetail"},
		{"/trainer-profiles", false, "trainerProfiles"},
		{"/login", false, "login"},
	}

	for _, tt := range tests {
		got, err := EntityRouteName(tt.route, tt.detail)
		if err != nil {
			t.Fatalf("EntityRouteName(%q, %v) unexpected error: %v", tt.route, tt.detail, err)
		}
		if got != tt.expected {
			t.Errorf("EntityRouteName(%q, %v) = %q, want %q", tt.route, tt.detail, got, tt.expected)
		}
	}

	if _, err := EntityRouteName("invalid", false); !errors.Is(err, ErrMalformedRoute) {
		t.Errorf("EntityRouteName(invalid) error = %v, want ErrMalformedRoute", err)
	}
}
