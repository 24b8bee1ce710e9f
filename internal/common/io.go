// Package common provides the shared transaction file I/O: CSV and JSON
// import of the upstream row format, and export of enriched results.
package common

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"ventus/travel-enrich/internal/apperror"
	"ventus/travel-enrich/internal/dateutils"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// transactionRow is the CSV/JSON wire shape of one imported transaction.
// Dates stay strings until conversion so tolerant parsing happens in one
// place.
type transactionRow struct {
	TransactionID      string `csv:"transaction_id" json:"transaction_id"`
	MerchantName       string `csv:"merchant_name" json:"merchant_name"`
	NormalizedMerchant string `csv:"normalized_merchant" json:"normalized_merchant,omitempty"`
	Description        string `csv:"description" json:"description,omitempty"`
	MCC                string `csv:"mcc" json:"mcc,omitempty"`
	Amount             string `csv:"amount" json:"amount"`
	Date               string `csv:"date" json:"date"`
	ZipCode            string `csv:"zip_code" json:"zip_code,omitempty"`
	HomeZip            string `csv:"home_zip" json:"home_zip,omitempty"`
	Pillar             string `csv:"pillar" json:"pillar"`
	Subcategory        string `csv:"subcategory" json:"subcategory,omitempty"`
}

// enrichedRow is the exported shape of one enriched transaction.
type enrichedRow struct {
	TransactionID       string `csv:"transaction_id" json:"transaction_id"`
	MerchantName        string `csv:"merchant_name" json:"merchant_name"`
	Amount              string `csv:"amount" json:"amount"`
	Date                string `csv:"date" json:"date"`
	ZipCode             string `csv:"zip_code" json:"zip_code,omitempty"`
	Pillar              string `csv:"pillar" json:"pillar"`
	Subcategory         string `csv:"subcategory" json:"subcategory,omitempty"`
	OriginalPillar      string `csv:"original_pillar" json:"original_pillar"`
	OriginalSubcategory string `csv:"original_subcategory" json:"original_subcategory,omitempty"`
	IsTravel            bool   `csv:"is_travel" json:"is_travel"`
	TravelPeriodStart   string `csv:"travel_period_start" json:"travel_period_start,omitempty"`
	TravelPeriodEnd     string `csv:"travel_period_end" json:"travel_period_end,omitempty"`
	TravelDestination   string `csv:"travel_destination" json:"travel_destination,omitempty"`
	TravelReason        string `csv:"travel_reason" json:"travel_reason,omitempty"`
}

// SetCSVDelimiter configures the field separator used for CSV import and
// export. Applies process-wide; call it once during startup.
func SetCSVDelimiter(delimiter rune) {
	if delimiter == 0 {
		return
	}
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delimiter
		return r
	})
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = delimiter
		return gocsv.NewSafeCSVWriter(w)
	})
}

// ReadTransactionsCSV imports transactions from a CSV file.
func ReadTransactionsCSV(path string, log logging.Logger) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close input file")
		}
	}()

	var rows []transactionRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return convertRows(rows, path)
}

// ReadTransactionsJSON imports transactions from a JSON array file.
func ReadTransactionsJSON(path string, log logging.Logger) ([]models.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	txs, err := convertRows(rows, path)
	if err != nil {
		return nil, err
	}
	log.WithFields(logging.F("file", path), logging.F("count", len(txs))).Debug("Imported transactions")
	return txs, nil
}

func convertRows(rows []transactionRow, source string) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		date, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return nil, &apperror.ParseError{Source: source, Field: "date", Value: row.Date, Err: err}
		}
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, &apperror.ParseError{Source: source, Field: "amount", Value: row.Amount, Err: err}
		}
		txs = append(txs, models.Transaction{
			TransactionID:      row.TransactionID,
			MerchantName:       row.MerchantName,
			NormalizedMerchant: row.NormalizedMerchant,
			Description:        row.Description,
			MCC:                row.MCC,
			Amount:             amount,
			Date:               date,
			ZipCode:            row.ZipCode,
			HomeZip:            row.HomeZip,
			Pillar:             row.Pillar,
			Subcategory:        row.Subcategory,
		})
	}
	return txs, nil
}

// WriteEnrichedCSV exports enriched transactions to a CSV file.
func WriteEnrichedCSV(path string, enriched []models.EnrichedTransaction, log logging.Logger) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close output file")
		}
	}()

	rows := toEnrichedRows(enriched)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.WithFields(logging.F("file", path), logging.F("count", len(rows))).Info("Wrote enriched transactions")
	return nil
}

// WriteEnrichedJSON exports enriched transactions as a JSON array.
func WriteEnrichedJSON(path string, enriched []models.EnrichedTransaction, log logging.Logger) error {
	rows := toEnrichedRows(enriched)
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding enriched transactions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.WithFields(logging.F("file", path), logging.F("count", len(rows))).Info("Wrote enriched transactions")
	return nil
}

func toEnrichedRows(enriched []models.EnrichedTransaction) []enrichedRow {
	rows := make([]enrichedRow, 0, len(enriched))
	for _, e := range enriched {
		row := enrichedRow{
			TransactionID:       e.TransactionID,
			MerchantName:        e.MerchantName,
			Amount:              e.Amount.String(),
			Date:                dateutils.FormatDate(e.Date),
			ZipCode:             e.ZipCode,
			Pillar:              e.Pillar,
			Subcategory:         e.Subcategory,
			OriginalPillar:      e.OriginalPillar,
			OriginalSubcategory: e.OriginalSubcategory,
			IsTravel:            e.IsTravel(),
		}
		if e.TravelContext != nil {
			row.TravelPeriodStart = e.TravelContext.PeriodStart
			row.TravelPeriodEnd = e.TravelContext.PeriodEnd
			row.TravelDestination = e.TravelContext.Destination
			row.TravelReason = e.TravelContext.Reason
		}
		rows = append(rows, row)
	}
	return rows
}
