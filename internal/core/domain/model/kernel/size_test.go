package kernel_test

import (
	"testing"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	for _, size := range []kernel.Size{kernel.Small, kernel.Medium, kernel.Big} {
		parsed, err := kernel.ParseSize(size.String())
		require.NoError(t, err)
		assert.Equal(t, size, parsed)
	}

	_, err := kernel.ParseSize("huge")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.ErrorIs(t, kernel.UnknownSize.Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", kernel.Size(7).String())
}
