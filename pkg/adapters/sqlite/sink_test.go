package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/aretw0/pollster/pkg/adapters/sqlite"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.RecordSink = (*sqlite.Sink)(nil)

func TestSQLiteSink_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "records.db")
	sink, err := sqlite.Open(path)
	require.NoError(t, err)

	rec := domain.Record{
		Age:        domain.AgeFortyToFifty,
		Status:     domain.StatusStronglyPositive,
		Instrument: domain.InstrumentBankDeposits,
		Funding:    domain.FundingUnder1M,
		Contact:    "+1234567890",
	}
	ctx := context.Background()
	require.NoError(t, sink.Append(ctx, rec))
	assert.ErrorIs(t, sink.Append(ctx, domain.Record{}), domain.ErrIncompleteRecord)
	require.NoError(t, sink.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var age, status, instrument, budget, contact, rendered string
	row := db.QueryRow(`SELECT age, status, instrument, budget, contact, rendered FROM survey_records`)
	require.NoError(t, row.Scan(&age, &status, &instrument, &budget, &contact, &rendered))

	assert.Equal(t, "40-50", age)
	assert.Equal(t, "Большой плюс", status)
	assert.Equal(t, "Вклады", instrument)
	assert.Equal(t, "<1 миллиона", budget)
	assert.Equal(t, "+1234567890", contact)
	assert.Equal(t, rec.Format(), rendered)
}

func TestSQLiteSink_ClosedDatabase(t *testing.T) {
	sink, err := sqlite.Open(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	err = sink.Append(context.Background(), domain.Record{
		Age:        domain.AgeFiftyPlus,
		Status:     domain.StatusPositive,
		Instrument: domain.InstrumentStocks,
		Funding:    domain.Funding1Mto5M,
		Contact:    "+1",
	})
	assert.ErrorIs(t, err, domain.ErrSinkWrite)
}
