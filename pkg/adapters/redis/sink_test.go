package redis_test

import (
	"context"
	"testing"

	"github.com/aretw0/pollster/pkg/adapters/redis"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.RecordSink = (*redis.Sink)(nil)

func TestRedisSink_Append(t *testing.T) {
	mr, client := newClient(t)
	sink := redis.NewSink(client, "records")
	ctx := context.Background()

	first := domain.Record{
		Age:        domain.AgeEighteenToTwentyFive,
		Status:     domain.StatusNoExperience,
		Instrument: domain.InstrumentStocks,
		Funding:    domain.FundingOver10M,
		Contact:    "+1234567890",
	}
	second := first
	second.Contact = "+2"

	require.NoError(t, sink.Append(ctx, first))
	require.NoError(t, sink.Append(ctx, second))

	list, err := mr.List("records")
	require.NoError(t, err)
	assert.Equal(t, []string{first.Format(), second.Format()}, list)
}

func TestRedisSink_RejectsIncomplete(t *testing.T) {
	mr, client := newClient(t)
	sink := redis.NewSink(client, "records")

	err := sink.Append(context.Background(), domain.Record{Age: domain.AgeFiftyPlus})
	assert.ErrorIs(t, err, domain.ErrIncompleteRecord)
	assert.False(t, mr.Exists("records"))
}

func TestRedisSink_WriteFailure(t *testing.T) {
	mr, client := newClient(t)
	sink := redis.NewSink(client, "records")
	mr.SetError("READONLY You can't write against a read only replica.")

	err := sink.Append(context.Background(), domain.Record{
		Age:        domain.AgeFiftyPlus,
		Status:     domain.StatusPositive,
		Instrument: domain.InstrumentCrypto,
		Funding:    domain.Funding1Mto5M,
		Contact:    "+3",
	})
	assert.ErrorIs(t, err, domain.ErrSinkWrite)
}
