package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pollster/internal/testutils"
	"github.com/aretw0/pollster/pkg/adapters/memory"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/runner"
)

func TestConsole_ChoicePromptAndNumberSelection(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	require.NoError(t, c.SendChoicePrompt(context.Background(), "me", "Сколько вам лет?", []string{"18-25", "25-40"}))

	out := buf.String()
	assert.Contains(t, out, "Сколько вам лет?")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "25-40")

	assert.Equal(t, domain.NewTextMessage("me", "2"), c.Parse("me", "2"), "parsing keeps numbers literal")
	assert.Equal(t, domain.NewTextMessage("me", "25-40"), c.Resolve(c.Parse("me", "2")))
	assert.Equal(t, domain.NewTextMessage("me", "7"), c.Resolve(c.Parse("me", "7")), "out of range stays literal")
	assert.Equal(t, domain.NewTextMessage("other", "1"), c.Resolve(c.Parse("other", "1")), "choices are per user")
	contact := domain.NewContactMessage("me", "+1")
	assert.Equal(t, contact, c.Resolve(contact))
}

func TestConsole_ContactCommand(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	require.NoError(t, c.SendContactRequest(context.Background(), "me", "Отправьте контакт"))
	assert.Contains(t, buf.String(), ContactCommand)

	assert.Equal(t, domain.NewContactMessage("me", "+100"), c.Parse("me", "/contact +100"))
	assert.Equal(t, domain.NewContactMessage("me", ""), c.Parse("me", "/contact"))
	assert.Equal(t, domain.NewTextMessage("me", "/contacts"), c.Parse("me", "/contacts"))
	assert.Equal(t, domain.NewTextMessage("me", "1"), c.Resolve(c.Parse("me", "1")), "contact prompt clears choices")
}

func TestConsole_Read(t *testing.T) {
	c := New(&bytes.Buffer{})
	in := strings.NewReader("18-25\r\n/contact +7\n")

	var got []domain.Inbound
	for msg := range c.Read(context.Background(), in, "me") {
		got = append(got, msg)
	}

	assert.Equal(t, []domain.Inbound{
		domain.NewTextMessage("me", "18-25"),
		domain.NewContactMessage("me", "+7"),
	}, got)
}

func TestConsole_ReadStopsOnCancel(t *testing.T) {
	c := New(&bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	ch := c.Read(ctx, strings.NewReader("a\nb\nc\n"), "me")
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("reader did not stop")
		}
	}
}

func TestConsole_NumberedAnswersFromPipedInput(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	sink := memory.NewSink()
	r := runner.NewRunner(c.Handler(testutils.NewController(t)), c, sink)
	ctx := context.Background()

	require.NoError(t, r.Dispatch(ctx, domain.Inbound{UserID: "u"}))

	in := strings.NewReader("1\n1\n1\n4\n/contact +1234567890\n")
	require.NoError(t, r.Run(ctx, c.Read(ctx, in, "u")))

	require.Len(t, sink.Records(), 1)
	assert.Equal(t, domain.Record{
		Age:        domain.AgeEighteenToTwentyFive,
		Status:     domain.StatusNoExperience,
		Instrument: domain.InstrumentStocks,
		Funding:    domain.FundingOver10M,
		Contact:    "+1234567890",
	}, sink.Records()[0])
	assert.Contains(t, buf.String(), domain.CompletionText)
}

func TestConsole_HandlerResolvesAgainstCurrentPrompt(t *testing.T) {
	c := New(&bytes.Buffer{})
	ctrl := testutils.NewController(t)
	h := c.Handler(ctrl)
	ctx := context.Background()

	// Without the prompt being shown, "1" is not a label and is rejected.
	effects, err := h.HandleInbound(ctx, domain.NewTextMessage("u", "1"))
	require.NoError(t, err)
	require.Len(t, effects, 1)
	require.NoError(t, c.SendChoicePrompt(ctx, "u", effects[0].Text, effects[0].Choices))

	effects, err = h.HandleInbound(ctx, domain.NewTextMessage("u", "2"))
	require.NoError(t, err)
	require.Len(t, effects, 1)

	s, err := ctrl.Sessions().Load(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, domain.StageAwaitingInvestmentStatus, s.Stage)
	assert.Equal(t, domain.AgeTwentyFiveToForty, s.Record.Age)
}
