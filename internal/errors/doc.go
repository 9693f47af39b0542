// Package errors provides the structured error type used across poke-roster.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// optional metadata. Codes are compared by errors.Is, so wrapping keeps the
// classification intact:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to read cached record")
//	}
//
// # Roster taxonomy
//
// Lookups that the upstream service cannot satisfy fail with NotFound.
// Roster validation failures use dedicated codes so callers can tell them
// apart without string matching:
//
//	errors.IsRosterFull(err)         // roster already holds its capacity
//	errors.IsSelectionCount(err)     // not exactly four selections
//	errors.IsDuplicateSelection(err) // the four selections repeat a move
//
// GetMessage returns the text that should be shown to the user.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("base_url", cfg.BaseURL, vb)
//	errors.ValidateEnum("storage", cfg.Storage, []string{"bolt", "redis"}, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
