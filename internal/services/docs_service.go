package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"manara/internal/repositories"
	"manara/internal/utils"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

// DocsService renders trip e-tickets as PDFs.
type DocsService struct {
	TripRepo  repositories.TripRepository
	RouteRepo repositories.RouteRepository
	UserRepo  repositories.UserRepository
	RequestID string
	Loader    func(tripID, userID int64) (tripDocData, error)
}

type tripDocData struct {
	TripID        int64
	Reference     string
	PassengerName string
	Phone         string
	RouteName     string
	From          string
	To            string
	ScheduledTime time.Time
	Status        string
	StopCount     int
}

// GenerateETicket renders a ticket for the user's trip.
func (s DocsService) GenerateETicket(tripID, userID int64) ([]byte, string, error) {
	data, err := s.loadTripDocData(tripID, userID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("trip_id=%d", tripID))
	return buildETicketPDF(data)
}

func (s DocsService) loadTripDocData(tripID, userID int64) (tripDocData, error) {
	if s.Loader != nil {
		return s.Loader(tripID, userID)
	}

	var out tripDocData
	trip, err := s.TripRepo.GetByID(tripID, userID)
	if err != nil {
		return out, err
	}
	route, err := s.RouteRepo.GetByID(trip.RouteID, userID)
	if err != nil {
		return out, err
	}
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return out, err
	}

	out.TripID = trip.ID
	out.Reference = uuid.NewString()
	out.PassengerName = user.FullName
	out.Phone = user.PhoneNumber
	out.RouteName = route.Name
	out.From = route.StartLocation.Name
	out.To = route.EndLocation.Name
	out.ScheduledTime = trip.ScheduledTime
	out.Status = trip.Status
	out.StopCount = len(route.Stops)
	return out, nil
}

func buildETicketPDF(d tripDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MANARA E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger   : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Phone       : %s", safe(d.Phone, "-")),
		fmt.Sprintf("Route       : %s", safe(d.RouteName, "-")),
		fmt.Sprintf("Journey     : %s -> %s", safe(d.From, "-"), safe(d.To, "-")),
		fmt.Sprintf("Departure   : %s", d.ScheduledTime.Format("2006-01-02 15:04")),
		fmt.Sprintf("Stops       : %d", d.StopCount),
		fmt.Sprintf("Status      : %s", safe(d.Status, "-")),
		fmt.Sprintf("Trip No     : #%d", d.TripID),
		fmt.Sprintf("Reference   : %s", d.Reference),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: this e-ticket is valid for one passenger. Present it when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.TripID, safeFilenamePart(d.Reference))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	out := replacer.Replace(strings.TrimSpace(s))
	if out == "" {
		return "ticket"
	}
	return out
}
