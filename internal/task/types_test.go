package task

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"To Do", StatusToDo, false},
		{"In Progress", StatusInProgress, false},
		{"Done", StatusDone, false},
		{"done", "", true},
		{"TO DO", "", true},
		{" Done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"LOW", PriorityLow, false},
		{"medium", PriorityMedium, false},
		{"High", PriorityHigh, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidationErrorListsVocabulary(t *testing.T) {
	_, err := ParseStatus("Wrong")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "status" || ve.Value != "Wrong" {
		t.Errorf("ValidationError = %+v", ve)
	}
	for _, st := range Statuses() {
		if !strings.Contains(err.Error(), string(st)) {
			t.Errorf("error %q does not mention %q", err.Error(), st)
		}
	}
}

func TestMalformedStoreError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := error(&MalformedStoreError{Location: "/tmp/tasks.json", Path: "[1].status", Err: cause})

	if !errors.Is(err, ErrMalformedStore) {
		t.Error("expected errors.Is(err, ErrMalformedStore)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrapped")
	}
	want := "malformed task store /tmp/tasks.json: [1].status: unexpected end of JSON input"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUpdateFieldsIsZero(t *testing.T) {
	if !(UpdateFields{}).IsZero() {
		t.Error("empty UpdateFields should be zero")
	}
	empty := ""
	if (UpdateFields{Description: &empty}).IsZero() {
		t.Error("UpdateFields with empty description should not be zero")
	}
}
