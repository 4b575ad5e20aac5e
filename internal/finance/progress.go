package finance

import (
	"math"

	"github.com/atelierhq/agency-api/internal/domain"
)

// DeriveProgress computes a project's completion percentage from its tasks:
// round-half-up of 100 * done / total. The boolean is false for an empty
// task list, in which case derivation does not apply and the caller keeps
// the admin-set progress value.
func DeriveProgress(tasks []domain.Task) (int, bool) {
	if len(tasks) == 0 {
		return 0, false
	}

	done := 0
	for _, t := range tasks {
		if t.IsDone() {
			done++
		}
	}

	ratio := 100 * float64(done) / float64(len(tasks))
	return int(math.Floor(ratio + 0.5)), true
}
