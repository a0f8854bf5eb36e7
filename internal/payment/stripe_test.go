package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(4500), MinorUnits(45))
	assert.Equal(t, int64(4599), MinorUnits(45.99))
	// Float prices like 0.1+0.2 must round, not truncate.
	assert.Equal(t, int64(30), MinorUnits(0.1+0.2))
}

func TestCreateIntentRejectsNonPositiveAmounts(t *testing.T) {
	g := NewStripeGateway("sk_test_placeholder")

	_, err := g.CreateIntent(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = g.CreateIntent(context.Background(), -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
