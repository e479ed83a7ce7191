package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/allisson/luhnify/internal/luhn/http/dto"
	"github.com/allisson/luhnify/internal/luhn/usecase"
)

// ErrChecksumMismatch is returned by RunValidate so the process exits non-zero
// for a number that fails the checksum.
var ErrChecksumMismatch = errors.New("number failed the Luhn checksum")

// RunValidate checks a number and prints the result. For an invalid number the
// text output also names the check digit that would make it valid.
func RunValidate(
	ctx context.Context,
	generatorUseCase usecase.GeneratorUseCase,
	logger *slog.Logger,
	streams IOTuple,
	number string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result, err := generatorUseCase.Validate(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to validate number: %w", err)
	}

	logger.Debug("number validated",
		slog.String("number", result.Number),
		slog.Bool("valid", result.Valid),
	)

	if format == formatJSON {
		if err := writeJSON(streams.Writer, dto.MapValidationToResponse(result)); err != nil {
			return err
		}
	} else if result.Valid {
		_, _ = fmt.Fprintf(streams.Writer, "%s is valid\n", result.Number)
	} else {
		_, _ = fmt.Fprintf(streams.Writer, "%s is invalid (expected check digit %s: %s%s)\n",
			result.Number, result.CheckDigit, result.Number[:len(result.Number)-1], result.CheckDigit)
	}

	if !result.Valid {
		return ErrChecksumMismatch
	}
	return nil
}
