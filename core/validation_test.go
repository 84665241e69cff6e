package core

import (
	"errors"
	"testing"
	"time"
)

func validEvent() *Event {
	return &Event{
		EventKey:    "native:1",
		Title:       "Jazz Night at Vega",
		Description: "An intimate evening of live jazz.",
		Category:    "music",
		Venue:       "Vega",
		City:        "Copenhagen",
		Price:       250,
		EventDate:   time.Now().Add(24 * time.Hour),
		TicketsLeft: 40,
		Source:      SourceTypeNative,
	}
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Event)
		wantErr error
	}{
		{
			name:    "valid event",
			mutate:  func(e *Event) {},
			wantErr: nil,
		},
		{
			name:    "empty title",
			mutate:  func(e *Event) { e.Title = "" },
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "empty category",
			mutate:  func(e *Event) { e.Category = "" },
			wantErr: ErrEmptyCategory,
		},
		{
			name:    "negative price",
			mutate:  func(e *Event) { e.Price = -1 },
			wantErr: ErrNegativePrice,
		},
		{
			name:    "invalid source type",
			mutate:  func(e *Event) { e.Source = SourceType(99) },
			wantErr: ErrInvalidSourceType,
		},
		{
			name:    "zero event date",
			mutate:  func(e *Event) { e.EventDate = time.Time{} },
			wantErr: ErrMissingEventDate,
		},
		{
			name:    "free event is valid",
			mutate:  func(e *Event) { e.Price = 0 },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.mutate(event)
			err := ValidateEvent(event)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateEvent() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEvent() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("ValidateEvent() error = %v, want wrapped %v", err, ErrInvalidEvent)
			}
		})
	}
}

func TestValidateEvent_Nil(t *testing.T) {
	if err := ValidateEvent(nil); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("ValidateEvent(nil) error = %v, want %v", err, ErrInvalidEvent)
	}
}

func TestValidateSourceType(t *testing.T) {
	if err := ValidateSourceType(SourceTypeNative); err != nil {
		t.Errorf("ValidateSourceType(native) unexpected error: %v", err)
	}
	if err := ValidateSourceType(SourceTypeExternal); err != nil {
		t.Errorf("ValidateSourceType(external) unexpected error: %v", err)
	}
	if err := ValidateSourceType(SourceType(0)); !errors.Is(err, ErrInvalidSourceType) {
		t.Errorf("ValidateSourceType(0) error = %v, want %v", err, ErrInvalidSourceType)
	}
}
