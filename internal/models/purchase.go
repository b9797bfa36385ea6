package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the purchase_ledger_entries table.
// ThisEntrySacks is a generated column and is never written.
type LedgerEntry struct {
	EntryID            int64               `db:"entry_id"`
	ReportNumber       string              `db:"report_number"`
	SequenceNumber     string              `db:"sequence_number"`
	ExporterCode       string              `db:"exporter_code"`
	HarvestYear        string              `db:"harvest_year"`
	PurchaseDate       time.Time           `db:"purchase_date"`
	SacksWashed        decimal.Decimal     `db:"sacks_washed"`
	ValueWashedLocal   decimal.Decimal     `db:"value_washed_local"`
	SacksUnwashed      decimal.Decimal     `db:"sacks_unwashed"`
	ValueUnwashedLocal decimal.Decimal     `db:"value_unwashed_local"`
	Class              string              `db:"class"`
	Region             sql.NullString      `db:"region"`
	CumulativeSacksNew decimal.NullDecimal `db:"cumulative_sacks_new"`
	ThisEntrySacks     decimal.Decimal     `db:"this_entry_sacks"`
	Notes              sql.NullString      `db:"notes"`
	CreatedAt          time.Time           `db:"created_at"`
	CreatedBy          string              `db:"created_by"`
}
