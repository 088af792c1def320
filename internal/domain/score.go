package domain

import (
	"math"
	"sort"

	m "mutagate.dev/pkg/mutagate/internal/model"
	"mutagate.dev/pkg/mutagate/pkg"
)

// buildReport folds the accumulated evaluations into the final gate report.
// Harness errors are excluded from the kill-rate denominator; the rate is
// rounded to one decimal and a zero denominator is a vacuous 100.0.
func buildReport(evaluations pkg.FileSpill[m.Evaluation], threshold float64) (m.Report, error) {
	var killed, survived, errored int

	var survivors []m.Evaluation

	err := evaluations.Range(func(_ uint64, eval m.Evaluation) error {
		switch {
		case eval.Errored():
			errored++
		case eval.Killed:
			killed++
		default:
			survived++
			survivors = append(survivors, eval)
		}

		return nil
	})
	if err != nil {
		return m.Report{}, err
	}

	// Stable survivor order so parallel runs produce identical reports.
	sort.Slice(survivors, func(i, j int) bool {
		a, b := survivors[i].Mutation, survivors[j].Mutation
		if a.File != b.File {
			return a.File < b.File
		}

		if a.Line != b.Line {
			return a.Line < b.Line
		}

		return a.Description < b.Description
	})

	total := killed + survived

	return m.Report{
		Status:    statusFor(killRate(killed, total), threshold),
		Total:     total,
		Killed:    killed,
		Survived:  survived,
		Errored:   errored,
		KillRate:  killRate(killed, total),
		Threshold: threshold,
		Survivors: survivors,
	}, nil
}

// vacuousReport is the trivially passing report for a revision with no
// eligible changes: zero mutants, 100.0 kill rate.
func vacuousReport(threshold float64) m.Report {
	return m.Report{
		Status:    m.StatusPass,
		KillRate:  100.0,
		Threshold: threshold,
		Survivors: []m.Evaluation{},
	}
}

func killRate(killed, total int) float64 {
	if total == 0 {
		return 100.0
	}

	return math.Round(float64(killed)/float64(total)*1000) / 10
}

func statusFor(rate, threshold float64) m.Status {
	if rate >= threshold {
		return m.StatusPass
	}

	return m.StatusFail
}
