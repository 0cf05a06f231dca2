package sched

// Static priority bounds. Priorities map onto nice values -20..19 with the
// default priority corresponding to nice 0.
const (
	minPrio     = 100
	defaultPrio = 120
	maxPrio     = 139

	// nice0Load is the load weight of a nice-0 task. Virtual runtime
	// advances at exactly wall-tick rate for tasks carrying this weight.
	nice0Load = 1024
)

// prioToWeight maps static priorities (100..139) to load weights. Each step
// down the table costs roughly 10% CPU share relative to its neighbour.
var prioToWeight = [40]int{
	88761, 71755, 56483, 46273, 36291,
	29154, 23254, 18705, 14949, 11916,
	9548, 7620, 6100, 4904, 3906,
	3121, 2501, 1991, 1586, 1277,
	1024, 820, 655, 526, 423,
	335, 272, 215, 172, 137,
	110, 87, 70, 56, 45,
	36, 29, 23, 18, 15,
}

// weightOf returns the load weight for the given static priority. Priorities
// outside the valid range are clamped onto the table bounds.
func weightOf(prio int) int {
	if prio < minPrio {
		prio = minPrio
	} else if prio > maxPrio {
		prio = maxPrio
	}
	return prioToWeight[prio-minPrio]
}
