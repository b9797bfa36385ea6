package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PurchaseClass is the coffee-lot category of a ledger row.
type PurchaseClass string

const (
	PurchaseClassWashed   PurchaseClass = "Lavado"
	PurchaseClassUnwashed PurchaseClass = "Corriente"
)

// PurchaseSubmission is one grouped purchase event as submitted by an exporter:
// a single date and exporter with a washed and an unwashed split.
type PurchaseSubmission struct {
	ExporterCode       string
	HarvestYear        string
	PurchaseDate       time.Time
	SacksWashed        decimal.Decimal
	ValueWashedLocal   decimal.Decimal
	SacksUnwashed      decimal.Decimal
	ValueUnwashedLocal decimal.Decimal
	Region             *string
	CumulativeSacksNew *decimal.Decimal
	Notes              *string
}

// AmountScale is the number of decimal places the ledger stores for sacks and values.
const AmountScale = 2

// Validate checks field-level constraints that binding tags cannot express.
func (s PurchaseSubmission) Validate() error {
	if strings.TrimSpace(s.ExporterCode) == "" {
		return fmt.Errorf("%w: exporter code is required", apperrors.ErrValidation)
	}
	if s.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: purchase date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(s.HarvestYear) == "" {
		return fmt.Errorf("%w: harvest year is required", apperrors.ErrValidation)
	}
	amounts := map[string]decimal.Decimal{
		"sacks_washed":         s.SacksWashed,
		"value_washed_local":   s.ValueWashedLocal,
		"sacks_unwashed":       s.SacksUnwashed,
		"value_unwashed_local": s.ValueUnwashedLocal,
	}
	if s.CumulativeSacksNew != nil {
		amounts["cumulative_sacks_new"] = *s.CumulativeSacksNew
	}
	for field, v := range amounts {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, field)
		}
		if !v.Equal(v.Round(AmountScale)) {
			return fmt.Errorf("%w: %s allows at most %d decimal places", apperrors.ErrValidation, field, AmountScale)
		}
	}
	return nil
}

// QualifyingClasses returns the classes that contribute sacks or value, washed first.
func (s PurchaseSubmission) QualifyingClasses() []PurchaseClass {
	classes := make([]PurchaseClass, 0, 2)
	if s.SacksWashed.IsPositive() || s.ValueWashedLocal.IsPositive() {
		classes = append(classes, PurchaseClassWashed)
	}
	if s.SacksUnwashed.IsPositive() || s.ValueUnwashedLocal.IsPositive() {
		classes = append(classes, PurchaseClassUnwashed)
	}
	return classes
}

// TotalSacks is the submission's sack count across both classes.
func (s PurchaseSubmission) TotalSacks() decimal.Decimal {
	return s.SacksWashed.Add(s.SacksUnwashed)
}

// BuildEntries expands the submission into one ledger row per qualifying class,
// all sharing the report number derived from sequence. Fails with
// apperrors.ErrNoValidData when neither class qualifies.
func (s PurchaseSubmission) BuildEntries(sequence int64, createdBy string) ([]LedgerEntry, error) {
	classes := s.QualifyingClasses()
	if len(classes) == 0 {
		return nil, apperrors.ErrNoValidData
	}

	reportNumber := FormatReportNumber(sequence, s.ExporterCode)
	entries := make([]LedgerEntry, 0, len(classes))
	for _, class := range classes {
		entry := LedgerEntry{
			ReportNumber:       reportNumber,
			SequenceNumber:     strconv.FormatInt(sequence, 10),
			ExporterCode:       s.ExporterCode,
			HarvestYear:        s.HarvestYear,
			PurchaseDate:       CalendarDate(s.PurchaseDate),
			SacksWashed:        decimal.Zero,
			ValueWashedLocal:   decimal.Zero,
			SacksUnwashed:      decimal.Zero,
			ValueUnwashedLocal: decimal.Zero,
			Class:              class,
			Region:             s.Region,
			CumulativeSacksNew: s.CumulativeSacksNew,
			Notes:              s.Notes,
			CreatedBy:          createdBy,
		}
		switch class {
		case PurchaseClassWashed:
			entry.SacksWashed = s.SacksWashed
			entry.ValueWashedLocal = s.ValueWashedLocal
		case PurchaseClassUnwashed:
			entry.SacksUnwashed = s.SacksUnwashed
			entry.ValueUnwashedLocal = s.ValueUnwashedLocal
		}
		entry.ThisEntrySacks = entry.SacksWashed.Add(entry.SacksUnwashed)
		entries = append(entries, entry)
	}
	return entries, nil
}

// FormatReportNumber composes "NNNN/EXPORTER". Sequences wider than four digits
// are printed in full.
func FormatReportNumber(sequence int64, exporterCode string) string {
	return fmt.Sprintf("%04d/%s", sequence, exporterCode)
}

// LedgerEntry is one row of the purchase ledger. Exactly one class pair is non-zero.
type LedgerEntry struct {
	EntryID            int64            `json:"entryID"`
	ReportNumber       string           `json:"reportNumber"`
	SequenceNumber     string           `json:"sequenceNumber"`
	ExporterCode       string           `json:"exporterCode"`
	HarvestYear        string           `json:"harvestYear"`
	PurchaseDate       time.Time        `json:"purchaseDate"`
	SacksWashed        decimal.Decimal  `json:"sacksWashed"`
	ValueWashedLocal   decimal.Decimal  `json:"valueWashedLocal"`
	SacksUnwashed      decimal.Decimal  `json:"sacksUnwashed"`
	ValueUnwashedLocal decimal.Decimal  `json:"valueUnwashedLocal"`
	Class              PurchaseClass    `json:"class"`
	Region             *string          `json:"region,omitempty"`
	CumulativeSacksNew *decimal.Decimal `json:"cumulativeSacksNew,omitempty"`
	ThisEntrySacks     decimal.Decimal  `json:"thisEntrySacks"`
	Notes              *string          `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	CreatedBy          string           `json:"createdBy"`
}

// PayDetail is the derived payment for a submission.
type PayDetail struct {
	TotalSacks   decimal.Decimal `json:"totalSacks"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Amount       decimal.Decimal `json:"amount"`
}

// CalculatePayDetail computes totalSacks * pricePerSack * rate, rounded to cents.
func CalculatePayDetail(totalSacks, rate, pricePerSack decimal.Decimal) PayDetail {
	return PayDetail{
		TotalSacks:   totalSacks,
		ExchangeRate: rate,
		Amount:       totalSacks.Mul(pricePerSack).Mul(rate).Round(2),
	}
}

// PurchaseRegistration is the result of a committed submission.
type PurchaseRegistration struct {
	ReportNumber string
	Entries      []LedgerEntry
	PayDetail    PayDetail
}

// PurchaseExportFilter selects ledger rows for a spreadsheet export.
type PurchaseExportFilter struct {
	From         time.Time
	To           time.Time
	ExporterCode *string
}
