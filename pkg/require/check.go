package require

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Binary requires tool to be on PATH.
func Binary(tool string) Requirement {
	return Requirement{
		Name:      tool,
		Cacheable: true,
		check: func(context.Context) CheckResult {
			return CheckBinary(tool)
		},
	}
}

// Binaries is Binary for several tools.
func Binaries(tools ...string) []Requirement {
	reqs := make([]Requirement, len(tools))
	for i, tool := range tools {
		reqs[i] = Binary(tool)
	}
	return reqs
}

// Func builds a requirement from a predicate that returns an error message,
// or "" when satisfied. Results aren't cached.
func Func(name string, fn func(ctx context.Context) string) Requirement {
	return Requirement{
		Name: name,
		check: func(ctx context.Context) CheckResult {
			msg := strings.TrimSpace(fn(ctx))
			return CheckResult{Name: name, Satisfied: msg == "", Message: msg}
		},
	}
}

// CheckBinary looks tool up on PATH.
func CheckBinary(tool string) CheckResult {
	result := CheckResult{
		Name:    tool,
		Message: fmt.Sprintf("This command requires %s.", tool),
	}

	if !ValidateToolName(tool) {
		return result
	}

	path, err := exec.LookPath(tool)
	if err != nil {
		return result
	}

	result.Satisfied = true
	result.Path = path
	result.Message = ""
	return result
}

// CheckAll checks reqs in order and stops at the first failure, so the
// returned results end with the failing one. Cacheable lookups are resolved
// up front, in parallel and through cache; predicates run one at a time in
// declaration order.
func CheckAll(ctx context.Context, reqs []Requirement, cache *Cache) []CheckResult {
	if len(reqs) == 0 {
		return nil
	}

	lookups := lookupAll(ctx, reqs, cache)

	results := make([]CheckResult, 0, len(reqs))
	for i, req := range reqs {
		result, ok := lookups[i]
		if !ok {
			result = req.Check(ctx)
		}
		results = append(results, result)
		if !result.Satisfied {
			break
		}
	}
	return results
}

// lookupAll resolves every cacheable requirement, keyed by its index.
func lookupAll(ctx context.Context, reqs []Requirement, cache *Cache) map[int]CheckResult {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[int]CheckResult)
	)

	for i, req := range reqs {
		if !req.Cacheable {
			continue
		}
		if cache != nil {
			if cached, ok := cache.Get(LocalScope, req.Name); ok {
				results[i] = cached
				continue
			}
		}

		wg.Add(1)
		go func(i int, req Requirement) {
			defer wg.Done()

			result := req.Check(ctx)
			if cache != nil {
				cache.Set(LocalScope, req.Name, result)
			}
			mu.Lock()
			results[i] = result
			mu.Unlock()
		}(i, req)
	}

	wg.Wait()
	return results
}

// FirstFailure returns the first unsatisfied result in order.
func FirstFailure(results []CheckResult) (CheckResult, bool) {
	for _, r := range results {
		if !r.Satisfied {
			return r, true
		}
	}
	return CheckResult{}, false
}
