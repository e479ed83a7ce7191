package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/allisson/luhnify/internal/luhn/http/dto"
	"github.com/allisson/luhnify/internal/luhn/usecase"
)

// GenerateOptions holds the flags of the generate command.
type GenerateOptions struct {
	Template   string
	BatchCount int
	Format     string
	// Output, when set, is a file path that receives one number per line.
	Output string
}

// RunGenerate produces a batch from a template and prints it. A partial batch
// is printed with a note on how many numbers were requested.
func RunGenerate(
	ctx context.Context,
	generatorUseCase usecase.GeneratorUseCase,
	logger *slog.Logger,
	streams IOTuple,
	opts GenerateOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}

	logger.Debug("generating numbers",
		slog.String("template", opts.Template),
		slog.Int("batch_count", opts.BatchCount),
	)

	batch, err := generatorUseCase.Generate(ctx, opts.Template, opts.BatchCount)
	if err != nil {
		return fmt.Errorf("failed to generate numbers: %w", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(batch.Text()+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("numbers written to file",
			slog.String("path", opts.Output),
			slog.Int("count", len(batch.Numbers)),
		)
	}

	if opts.Format == formatJSON {
		return writeJSON(streams.Writer, dto.MapBatchToResponse(batch))
	}

	for _, number := range batch.Numbers {
		_, _ = fmt.Fprintln(streams.Writer, number)
	}
	if batch.Partial() {
		_, _ = fmt.Fprintf(streams.Writer, "\nOnly %d of %d requested numbers could be generated.\n",
			len(batch.Numbers), batch.Requested)
	}

	return nil
}
