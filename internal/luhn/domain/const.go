// Package domain defines the core models for Luhn number generation: templates
// with wildcard positions, generated batches, and the limits that bound a run.
package domain

// Generation limits.
const (
	// MaxAttempts is the number of random resolutions tried for a single number
	// before giving up.
	MaxAttempts = 1000

	// MaxConsecutiveDuplicates is the number of Luhn-valid resolutions in a row
	// that may repeat a number already in the batch before the batch is closed
	// short. It only ends runs whose solution space is smaller than the batch.
	MaxConsecutiveDuplicates = 10 * MaxAttempts

	// MinBatchCount and MaxBatchCount bound the number of results per run.
	MinBatchCount = 1
	MaxBatchCount = 100

	// DownloadFilename is the name used when a batch is offered as a text file.
	DownloadFilename = "generated-numbers.txt"
)

// ClampBatchCount coerces a requested batch size into [MinBatchCount, MaxBatchCount].
func ClampBatchCount(n int) int {
	if n < MinBatchCount {
		return MinBatchCount
	}
	if n > MaxBatchCount {
		return MaxBatchCount
	}
	return n
}
