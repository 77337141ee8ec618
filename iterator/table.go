// Package iterator runs the chaotic-game point iteration described in
// spec.md §4.E: selection-table construction, per-thread RNG-driven
// xform selection, bad-point retry, and optional 3D camera projection.
// It uses a worker-pool concurrency shape (see
// psteitz-ifs's frameWorker and pthm-soup's per-goroutine RNG) rather
// than a single hot loop.
package iterator

// TableSize is the fixed length of each selection-table row (spec.md
// §3 "Selection table").
const TableSize = 10000

// Table is the selection table: without xaos a single row, with xaos
// (N+1) rows indexed by previous_xform+1, 0 meaning "no previous"
// (spec.md §3, §4.E).
type Table struct {
	rows [][]int32
}

// BuildTable constructs the selection table for n xforms with base
// weights and an optional xaos matrix (xaos[s][i] is the multiplier
// applied to xform i's weight when the previous xform was s; nil means
// no xaos, single row). Weights must be non-negative (spec.md §4.E).
func BuildTable(weights []float64, xaos [][]float64) *Table {
	n := len(weights)
	if xaos == nil {
		row := bucketRow(weights)
		return &Table{rows: [][]int32{row}}
	}
	rows := make([][]int32, n+1)
	rows[0] = bucketRow(weights)
	for s := 0; s < n; s++ {
		eff := make([]float64, n)
		for i, w := range weights {
			mult := 1.0
			if s < len(xaos) && i < len(xaos[s]) {
				mult = xaos[s][i]
			}
			eff[i] = w * mult
		}
		rows[s+1] = bucketRow(eff)
	}
	return &Table{rows: rows}
}

// bucketRow distributes TableSize entries proportionally to w using
// cumulative-sum bucketing (spec.md §4.E). If every weight is zero,
// every entry is 0.
func bucketRow(w []float64) []int32 {
	row := make([]int32, TableSize)
	total := 0.0
	for _, wi := range w {
		total += wi
	}
	if total <= 0 {
		return row
	}
	cum := make([]float64, len(w))
	running := 0.0
	for i, wi := range w {
		running += wi
		cum[i] = running / total
	}
	idx := 0
	for e := 0; e < TableSize; e++ {
		frac := (float64(e) + 0.5) / TableSize
		for idx < len(cum)-1 && frac >= cum[idx] {
			idx++
		}
		row[e] = int32(idx)
	}
	return row
}

// Pick returns the xform index selected for the given previous-xform
// index (-1 meaning none yet) and a uniform draw u in [0, TableSize).
func (t *Table) Pick(prevXform int, u int) int {
	row := t.rows[0]
	if len(t.rows) > 1 {
		row = t.rows[prevXform+1]
	}
	return int(row[u%TableSize])
}
