package activities

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"papernotes/internal/util"
)

func TestClassifyTypesSentinelErrors(t *testing.T) {
	cases := []struct {
		sentinel error
		wantType string
	}{
		{util.ErrInvalidInput, "InvalidInput"},
		{util.ErrInvalidPage, "InvalidPage"},
		{util.ErrMissingConfig, "MissingConfig"},
		{util.ErrMalformedResponse, "MalformedResponse"},
		{util.ErrExtractionService, "ExtractionService"},
		{util.ErrPersistence, "Persistence"},
	}
	for _, c := range cases {
		err := classify(fmt.Errorf("%w: details", c.sentinel))
		var appErr *temporal.ApplicationError
		require.True(t, errors.As(err, &appErr), c.wantType)
		require.Equal(t, c.wantType, appErr.Type())
	}
}

func TestClassifyPassesThroughUntypedErrors(t *testing.T) {
	require.NoError(t, classify(nil))

	plain := errors.New("connection reset")
	require.Equal(t, plain, classify(plain))
}
