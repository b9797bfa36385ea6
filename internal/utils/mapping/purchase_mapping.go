package mapping

import (
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/cafehnd/cafehnd_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:            d.EntryID,
		ReportNumber:       d.ReportNumber,
		SequenceNumber:     d.SequenceNumber,
		ExporterCode:       d.ExporterCode,
		HarvestYear:        d.HarvestYear,
		PurchaseDate:       d.PurchaseDate,
		SacksWashed:        d.SacksWashed,
		ValueWashedLocal:   d.ValueWashedLocal,
		SacksUnwashed:      d.SacksUnwashed,
		ValueUnwashedLocal: d.ValueUnwashedLocal,
		Class:              string(d.Class),
		Region:             toNullString(d.Region),
		CumulativeSacksNew: toNullDecimal(d.CumulativeSacksNew),
		ThisEntrySacks:     d.ThisEntrySacks,
		Notes:              toNullString(d.Notes),
		CreatedAt:          d.CreatedAt,
		CreatedBy:          d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:            m.EntryID,
		ReportNumber:       m.ReportNumber,
		SequenceNumber:     m.SequenceNumber,
		ExporterCode:       m.ExporterCode,
		HarvestYear:        m.HarvestYear,
		PurchaseDate:       m.PurchaseDate,
		SacksWashed:        m.SacksWashed,
		ValueWashedLocal:   m.ValueWashedLocal,
		SacksUnwashed:      m.SacksUnwashed,
		ValueUnwashedLocal: m.ValueUnwashedLocal,
		Class:              domain.PurchaseClass(m.Class),
		Region:             fromNullString(m.Region),
		CumulativeSacksNew: fromNullDecimal(m.CumulativeSacksNew),
		ThisEntrySacks:     m.ThisEntrySacks,
		Notes:              fromNullString(m.Notes),
		CreatedAt:          m.CreatedAt,
		CreatedBy:          m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
