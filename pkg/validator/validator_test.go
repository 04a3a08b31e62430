package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkorir/maziwa/pkg/apperr"
)

type chargeRequest struct {
	Amount float64 `validate:"required,gt=0"`
	Kind   string  `validate:"omitempty,oneof=shortage overage"`
}

func TestValidate(t *testing.T) {
	t.Run("Valid struct passes", func(t *testing.T) {
		assert.NoError(t, Validate(&chargeRequest{Amount: 10}))
	})

	t.Run("Failures carry the validation kind", func(t *testing.T) {
		err := Validate(&chargeRequest{Amount: -1})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "Amount")
	})

	t.Run("Messages name every failed field", func(t *testing.T) {
		err := Validate(&chargeRequest{Amount: 0, Kind: "surplus"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Amount")
		assert.Contains(t, err.Error(), "Kind")
	})
}
