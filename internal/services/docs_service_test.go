package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

func TestGenerateETicket(t *testing.T) {
	svc := DocsService{
		Loader: func(tripID, userID int64) (tripDocData, error) {
			return tripDocData{
				TripID:        42,
				Reference:     "ab12cd34",
				PassengerName: "Jane Wanjiku",
				Phone:         "+254712345678",
				RouteName:     "CBD - Thika",
				From:          "Nairobi CBD",
				To:            "Thika Stage",
				ScheduledTime: time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
				Status:        models.TripStatusScheduled,
				StopCount:     3,
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateETicket(42, 5)
	if err != nil {
		t.Fatalf("GenerateETicket: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if len(pdf) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(pdf))
	}
	if filename != "ETICKET_42_ab12cd34.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestGenerateETicketPropagatesNotFound(t *testing.T) {
	svc := DocsService{
		Loader: func(tripID, userID int64) (tripDocData, error) {
			return tripDocData{}, domain.NotFoundError{Resource: "trip"}
		},
	}

	if _, _, err := svc.GenerateETicket(99, 5); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"ab12cd34":    "ab12cd34",
		"a b/c\\d:e":  "a_b-c-d-e",
		"   ":         "ticket",
		" trimmed me": "trimmed_me",
	}
	for in, want := range cases {
		if got := safeFilenamePart(in); got != want {
			t.Fatalf("safeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
	if safe("", "-") != "-" || safe("x", "-") != "x" {
		t.Fatal("safe fallback broken")
	}
	if strings.Contains(safeFilenamePart("a b"), " ") {
		t.Fatal("spaces must not survive")
	}
}
