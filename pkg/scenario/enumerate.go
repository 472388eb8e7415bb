package scenario

import (
	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

var (
	eachWayOutcomes = []models.Result{models.ResultWon, models.ResultPlaced, models.ResultLost, models.ResultVoid}
	winOnlyOutcomes = []models.Result{models.ResultWon, models.ResultLost, models.ResultVoid}
)

// enumerate calls visit once for every assignment of domain values to n free legs, in
// odometer order: the first leg varies slowest. With n == 0 visit runs once with an empty
// assignment. The slice passed to visit is reused between calls. Enumeration stops at the
// first error visit returns.
func enumerate(n int, domain []models.Result, visit func(assignment []models.Result) error) error {
	assignment := make([]models.Result, n)
	pos := make([]int, n)
	for i := range assignment {
		assignment[i] = domain[0]
	}

	for {
		if err := visit(assignment); err != nil {
			return err
		}

		i := n - 1
		for ; i >= 0; i-- {
			pos[i]++
			if pos[i] < len(domain) {
				assignment[i] = domain[pos[i]]
				break
			}
			pos[i] = 0
			assignment[i] = domain[0]
		}
		if i < 0 {
			return nil
		}
	}
}

// scenarioCount is len(domain)^n
func scenarioCount(domainSize, n int) int {
	count := 1
	for i := 0; i < n; i++ {
		count *= domainSize
	}
	return count
}

// withUnknownsAs returns a copy of results with every index listed in unknown set to result
func withUnknownsAs(results []models.Result, unknown []int, result models.Result) []models.Result {
	out := make([]models.Result, len(results))
	copy(out, results)
	for _, idx := range unknown {
		out[idx] = result
	}
	return out
}
