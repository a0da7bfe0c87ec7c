package macrojournal

// Summary provides an at-a-glance overview of the journal's performance.
//
// Rates are percentages in [0,100]. A summary over an empty history is all
// zeros.
type Summary struct {
	TotalTrades   int
	Wins          int
	WinRate       float64 // % of trades with a positive R result
	AvgR          float64 // mean R result over all trades
	AlignmentRate float64 // % of trades aligned with the bias at entry

	// Win rate broken down by how the trade stood relative to the bias.
	WinRateByAlignment map[Alignment]float64
}

// NewSummary computes the analytics summary over a trade history.
func NewSummary(trades []Trade) Summary {
	s := Summary{
		TotalTrades:        len(trades),
		WinRateByAlignment: make(map[Alignment]float64),
	}
	if len(trades) == 0 {
		return s
	}

	var aligned int
	var totalR float64
	wins := make(map[Alignment]int)
	counts := make(map[Alignment]int)
	for _, t := range trades {
		totalR += t.ResultR
		counts[t.Alignment]++
		if t.Won() {
			s.Wins++
			wins[t.Alignment]++
		}
		if t.Alignment == Aligned {
			aligned++
		}
	}

	s.WinRate = float64(s.Wins) / float64(len(trades)) * 100
	s.AvgR = totalR / float64(len(trades))
	s.AlignmentRate = float64(aligned) / float64(len(trades)) * 100
	for a, n := range counts {
		s.WinRateByAlignment[a] = float64(wins[a]) / float64(n) * 100
	}
	return s
}
