package activities

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	"papernotes/internal/util"
)

// errorTypes maps the pipeline sentinels onto ApplicationError types. Plain
// wrapped errors lose their sentinel chain when temporal serializes them, so
// every activity error crosses the boundary through classify; the type names
// are what the workflow retry policy and the HTTP status mapping match on.
var errorTypes = []struct {
	sentinel error
	name     string
}{
	{util.ErrInvalidInput, "InvalidInput"},
	{util.ErrInvalidPage, "InvalidPage"},
	{util.ErrMissingConfig, "MissingConfig"},
	{util.ErrMalformedResponse, "MalformedResponse"},
	{util.ErrExtractionService, "ExtractionService"},
	{util.ErrPersistence, "Persistence"},
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, t := range errorTypes {
		if errors.Is(err, t.sentinel) {
			return temporal.NewApplicationError(err.Error(), t.name)
		}
	}
	return err
}
