package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/pricing"
)

// CommissionReport is what one partner or franchise agency earned over a
// period.
type CommissionReport struct {
	Agency      domain.Agency
	PeriodStart time.Time
	PeriodEnd   time.Time
	Bookings    []domain.Booking
	Revenue     decimal.Decimal
	Rate        decimal.Decimal
	Commission  decimal.Decimal
	Recipient   string
}

// CommissionReports builds one report per agency that earns commission and
// has a report address. Revenue counts completed bookings ending in
// [start, end).
func CommissionReports(snap *Snapshot, start, end time.Time) []CommissionReport {
	var reports []CommissionReport
	for _, a := range snap.Agencies {
		terms := pricing.ResolveCommission(a)
		if !terms.Applies() || terms.ReportEmail == nil || *terms.ReportEmail == "" {
			continue
		}
		bookings := filterBookings(snap.Bookings, BookingFilter{
			Status:   domain.BookingStatusCompleted,
			AgencyID: a.ID,
			From:     start,
			To:       end,
		})
		revenue := decimal.Zero
		for _, b := range bookings {
			revenue = revenue.Add(b.TotalPrice)
		}
		reports = append(reports, CommissionReport{
			Agency:      a,
			PeriodStart: start,
			PeriodEnd:   end,
			Bookings:    bookings,
			Revenue:     revenue,
			Rate:        *terms.Rate,
			Commission:  pricing.CommissionAmount(a, revenue),
			Recipient:   *terms.ReportEmail,
		})
	}
	return reports
}

// CSV renders the report's bookings.
func (r CommissionReport) CSV() ([]byte, error) {
	rows := [][]string{{"reference", "customer", "start", "end", "total", "commission"}}
	for _, b := range r.Bookings {
		rows = append(rows, []string{
			b.Reference,
			b.Customer.FullName(),
			b.StartDate.Format(time.DateOnly),
			b.EndDate.Format(time.DateOnly),
			b.TotalPrice.StringFixed(2),
			b.TotalPrice.Mul(r.Rate).StringFixed(2),
		})
	}
	rows = append(rows, []string{"TOTAL", "", "", "", r.Revenue.StringFixed(2), r.Commission.StringFixed(2)})
	return writeCSV(rows)
}

// AccountingExport is the CSV of completed bookings sent to the accountant.
type AccountingExport struct {
	Filename string
	Rows     int
	Total    decimal.Decimal
	VAT      decimal.Decimal
	Data     []byte
}

// BuildAccountingExport lists completed bookings ending in [start, end) with
// the VAT included in each total split out.
func BuildAccountingExport(snap *Snapshot, settings domain.AccountingSettings, start, end time.Time) (*AccountingExport, error) {
	bookings := filterBookings(snap.Bookings, BookingFilter{Status: domain.BookingStatusCompleted, From: start, To: end})
	sort.SliceStable(bookings, func(i, j int) bool { return bookings[i].EndDate.Before(bookings[j].EndDate) })

	agencyCodes := make(map[string]string, len(snap.Agencies))
	for _, a := range snap.Agencies {
		agencyCodes[a.ID] = a.Code
	}

	divisor := decimal.NewFromInt(1).Add(settings.VATRate.Div(decimal.NewFromInt(100)))
	out := &AccountingExport{
		Filename: fmt.Sprintf("%s-%s-%s.csv", snap.Brand, start.Format(time.DateOnly), end.AddDate(0, 0, -1).Format(time.DateOnly)),
	}
	rows := [][]string{{"invoice", "reference", "agency", "customer", "end", "net", "vat", "total", "currency"}}
	for _, b := range bookings {
		net := b.TotalPrice.Div(divisor).Round(2)
		vat := b.TotalPrice.Sub(net)
		out.Total = out.Total.Add(b.TotalPrice)
		out.VAT = out.VAT.Add(vat)
		rows = append(rows, []string{
			settings.InvoicePrefix + b.Reference,
			b.Reference,
			agencyCodes[b.AgencyID],
			b.Customer.FullName(),
			b.EndDate.Format(time.DateOnly),
			net.StringFixed(2),
			vat.StringFixed(2),
			b.TotalPrice.StringFixed(2),
			settings.Currency,
		})
	}
	out.Rows = len(bookings)

	data, err := writeCSV(rows)
	if err != nil {
		return nil, err
	}
	out.Data = data
	return out, nil
}

// DueReturns lists active bookings ending in [now, now+window], soonest first.
func DueReturns(snap *Snapshot, now time.Time, window time.Duration) []domain.Booking {
	due := filterBookings(snap.Bookings, BookingFilter{Status: domain.BookingStatusActive, From: now})
	out := due[:0]
	limit := now.Add(window)
	for _, b := range due {
		if !b.EndDate.After(limit) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
