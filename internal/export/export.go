// Package export renders dashboard tables as CSV files and paginated text
// reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"flux-web/internal/domain"
	"flux-web/internal/usecase"
)

// LinesPerPage is the number of body lines on each report page.
const LinesPerPage = 24

// PageBreak separates report pages.
const PageBreak = "\f"

// Table is a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// CSV writes headers and rows as RFC 4180 CSV.
func CSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("export: row %d has %d columns, want %d", i, len(row), len(t.Headers))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

// Report writes title followed by lines, LinesPerPage per page. Each page
// after the first starts with PageBreak. The title appears only on the
// first page.
func Report(w io.Writer, title string, lines []string) error {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	for i, line := range lines {
		if i > 0 && i%LinesPerPage == 0 {
			b.WriteString(PageBreak)
			b.WriteString("\n")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("export: write report: %w", err)
	}
	return nil
}

// Pages reports how many pages Report produces for n lines.
func Pages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + LinesPerPage - 1) / LinesPerPage
}

func Expos(expos []domain.Expo) Table {
	t := Table{Headers: []string{"Title", "Description", "Theme", "Location", "StartDate", "EndDate", "Status"}}
	for _, e := range expos {
		t.Rows = append(t.Rows, []string{e.Title, e.Description, e.Theme, e.Location, e.StartDate, e.EndDate, string(e.Status)})
	}
	return t
}

func ExpoLines(expos []domain.Expo) []string {
	out := make([]string, 0, len(expos))
	for _, e := range expos {
		out = append(out, fmt.Sprintf("%s - %s - %s", e.Title, e.Location, e.Status))
	}
	return out
}

func Booths(booths []domain.Booth) Table {
	t := Table{Headers: []string{"BoothNumber", "Size", "Price", "Status"}}
	for _, b := range booths {
		t.Rows = append(t.Rows, []string{b.BoothNumber, string(b.Size), formatPrice(b.Price), string(b.Status)})
	}
	return t
}

func BoothLines(booths []domain.Booth) []string {
	out := make([]string, 0, len(booths))
	for _, b := range booths {
		out = append(out, fmt.Sprintf("%s - %s - $%s - %s", b.BoothNumber, b.Size, formatPrice(b.Price), b.Status))
	}
	return out
}

func Sessions(sessions []domain.Session) Table {
	t := Table{Headers: []string{"Title", "Speaker", "Location", "StartTime", "EndTime", "Capacity"}}
	for _, s := range sessions {
		t.Rows = append(t.Rows, []string{
			s.Title, s.SpeakerName, s.Location,
			s.StartTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339),
			strconv.Itoa(s.Capacity),
		})
	}
	return t
}

func SessionLines(sessions []domain.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, fmt.Sprintf("%s - %s - %s", s.Title, s.SpeakerName, s.Location))
	}
	return out
}

// Applications joins each application with its exhibitor profile and expo.
// Missing lookups leave the cells empty.
func Applications(apps []domain.Application, exhibitors map[string]domain.Profile, expos map[string]domain.Expo) Table {
	t := Table{Headers: []string{"Company", "Contact", "Email", "Expo", "Status", "Submitted"}}
	for _, a := range apps {
		p := exhibitors[a.ExhibitorID]
		t.Rows = append(t.Rows, []string{
			a.CompanyName, p.FullName, p.Email, expos[a.ExpoID].Title,
			string(a.Status), a.SubmittedAt.Format(time.DateOnly),
		})
	}
	return t
}

func ApplicationLines(apps []domain.Application, exhibitors map[string]domain.Profile) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, fmt.Sprintf("%s - %s - %s", a.CompanyName, exhibitors[a.ExhibitorID].FullName, a.Status))
	}
	return out
}

func Analytics(stats []usecase.ExpoStats) Table {
	t := Table{Headers: []string{"expo_id", "title", "status", "registrations", "sessions", "booths", "occupied_booths", "applications"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.ExpoID, s.Title, string(s.Status),
			strconv.Itoa(s.Registrations), strconv.Itoa(s.Sessions),
			strconv.Itoa(s.Booths), strconv.Itoa(s.OccupiedBooths), strconv.Itoa(s.Applications),
		})
	}
	return t
}

func AnalyticsLines(stats []usecase.ExpoStats) []string {
	out := make([]string, 0, len(stats))
	for _, s := range stats {
		out = append(out, fmt.Sprintf("%s: Registrations: %d, Sessions: %d, Occupied Booths: %d", s.Title, s.Registrations, s.Sessions, s.OccupiedBooths))
	}
	return out
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
