package domain_test

import (
	"testing"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func submission(sacksWashed, valueWashed, sacksUnwashed, valueUnwashed string) domain.PurchaseSubmission {
	return domain.PurchaseSubmission{
		ExporterCode:       "048",
		HarvestYear:        "2025-2026",
		PurchaseDate:       time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		SacksWashed:        dec(sacksWashed),
		ValueWashedLocal:   dec(valueWashed),
		SacksUnwashed:      dec(sacksUnwashed),
		ValueUnwashedLocal: dec(valueUnwashed),
	}
}

func TestFormatReportNumber(t *testing.T) {
	tests := []struct {
		name     string
		sequence int64
		code     string
		want     string
	}{
		{"single digit is zero padded", 7, "048", "0007/048"},
		{"first report", 1, "048", "0001/048"},
		{"four digits", 1234, "112", "1234/112"},
		{"wider than four digits is not truncated", 12345, "048", "12345/048"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FormatReportNumber(tt.sequence, tt.code))
		})
	}
}

func TestCalculatePayDetail(t *testing.T) {
	price := dec("10.50")
	tests := []struct {
		name       string
		totalSacks string
		rate       string
		want       string
	}{
		{"ten sacks", "10", "24.56", "2578.80"},
		{"twenty sacks", "20", "24.56", "5157.60"},
		{"fractional sacks round to cents", "1.333", "24.5678", "343.86"},
		{"zero sacks", "0", "24.56", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CalculatePayDetail(dec(tt.totalSacks), dec(tt.rate), price)
			assert.True(t, dec(tt.want).Equal(got.Amount), "got %s, want %s", got.Amount, tt.want)
			assert.True(t, dec(tt.totalSacks).Equal(got.TotalSacks))
			assert.True(t, dec(tt.rate).Equal(got.ExchangeRate))
		})
	}
}

func TestPurchaseSubmission_QualifyingClasses(t *testing.T) {
	tests := []struct {
		name string
		sub  domain.PurchaseSubmission
		want []domain.PurchaseClass
	}{
		{"nothing submitted", submission("0", "0", "0", "0"), []domain.PurchaseClass{}},
		{"washed only", submission("20", "5000", "0", "0"), []domain.PurchaseClass{domain.PurchaseClassWashed}},
		{"unwashed only", submission("0", "0", "5", "1000"), []domain.PurchaseClass{domain.PurchaseClassUnwashed}},
		{"value without sacks qualifies", submission("0", "150", "0", "0"), []domain.PurchaseClass{domain.PurchaseClassWashed}},
		{"both classes", submission("20", "5000", "5", "1000"), []domain.PurchaseClass{domain.PurchaseClassWashed, domain.PurchaseClassUnwashed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.QualifyingClasses())
		})
	}
}

func TestPurchaseSubmission_BuildEntries_NoValidData(t *testing.T) {
	entries, err := submission("0", "0", "0", "0").BuildEntries(1, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrNoValidData)
	assert.Nil(t, entries)
}

func TestPurchaseSubmission_BuildEntries_WashedOnly(t *testing.T) {
	entries, err := submission("20", "5000", "0", "0").BuildEntries(1, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "0001/048", e.ReportNumber)
	assert.Equal(t, "1", e.SequenceNumber)
	assert.Equal(t, domain.PurchaseClassWashed, e.Class)
	assert.True(t, dec("20").Equal(e.SacksWashed))
	assert.True(t, dec("5000").Equal(e.ValueWashedLocal))
	assert.True(t, e.SacksUnwashed.IsZero())
	assert.True(t, e.ValueUnwashedLocal.IsZero())
	assert.True(t, dec("20").Equal(e.ThisEntrySacks))
	assert.Equal(t, "user-1", e.CreatedBy)
}

func TestPurchaseSubmission_BuildEntries_BothClasses(t *testing.T) {
	region := "El Paraiso"
	sub := submission("20", "5000", "5", "1000")
	sub.Region = &region

	entries, err := sub.BuildEntries(42, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	washed, unwashed := entries[0], entries[1]
	assert.Equal(t, "0042/048", washed.ReportNumber)
	assert.Equal(t, washed.ReportNumber, unwashed.ReportNumber)
	assert.Equal(t, washed.SequenceNumber, unwashed.SequenceNumber)
	assert.Equal(t, washed.PurchaseDate, unwashed.PurchaseDate)
	assert.Equal(t, &region, unwashed.Region)

	assert.Equal(t, domain.PurchaseClassUnwashed, unwashed.Class)
	assert.True(t, unwashed.SacksWashed.IsZero())
	assert.True(t, unwashed.ValueWashedLocal.IsZero())
	assert.True(t, dec("5").Equal(unwashed.SacksUnwashed))
	assert.True(t, dec("1000").Equal(unwashed.ValueUnwashedLocal))

	for _, e := range entries {
		assert.True(t, e.SacksWashed.Add(e.SacksUnwashed).Equal(e.ThisEntrySacks), "row %s", e.Class)
	}
}

func TestPurchaseSubmission_Validate(t *testing.T) {
	negative := submission("-1", "0", "0", "0")
	assert.ErrorIs(t, negative.Validate(), apperrors.ErrValidation)

	missingCode := submission("1", "0", "0", "0")
	missingCode.ExporterCode = " "
	assert.ErrorIs(t, missingCode.Validate(), apperrors.ErrValidation)

	missingHarvest := submission("1", "0", "0", "0")
	missingHarvest.HarvestYear = ""
	assert.ErrorIs(t, missingHarvest.Validate(), apperrors.ErrValidation)

	assert.NoError(t, submission("0", "0", "0", "0").Validate())
}

func TestPurchaseSubmission_Validate_AmountScale(t *testing.T) {
	tests := []struct {
		name    string
		sub     domain.PurchaseSubmission
		wantErr bool
	}{
		{"sub-cent value would store as zero", submission("0", "0.001", "0", "0"), true},
		{"third decimal on sacks", submission("0", "0", "1.005", "0"), true},
		{"two decimals", submission("10.25", "5000.50", "1.01", "0"), false},
		{"trailing zeros beyond two places", submission("1.500", "0", "0", "0"), false},
	}

	cumulative := dec("120.125")
	withCumulative := submission("1", "0", "0", "0")
	withCumulative.CumulativeSacksNew = &cumulative
	tests = append(tests, struct {
		name    string
		sub     domain.PurchaseSubmission
		wantErr bool
	}{"cumulative sacks", withCumulative, true})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIdentity_AuthorizeLedgerWrite(t *testing.T) {
	tests := []struct {
		name     string
		identity domain.Identity
		code     string
		wantErr  bool
	}{
		{"admin writes for anyone", domain.Identity{Role: domain.RoleAdmin}, "048", false},
		{"editor writes for own exporter", domain.Identity{Role: domain.RoleExporterEditor, ExporterCode: "048"}, "048", false},
		{"editor cannot write for other exporter", domain.Identity{Role: domain.RoleExporterEditor, ExporterCode: "048"}, "112", true},
		{"editor without exporter code", domain.Identity{Role: domain.RoleExporterEditor}, "048", true},
		{"manager is read only", domain.Identity{Role: domain.RoleManager, ExporterCode: "048"}, "048", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.identity.AuthorizeLedgerWrite(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoleFromID(t *testing.T) {
	role, err := domain.RoleFromID(2)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleExporterEditor, role)
	assert.Equal(t, int16(2), role.ID())

	_, err = domain.RoleFromID(9)
	assert.Error(t, err)
}
