package export

// Stage names the pipeline step a progress report belongs to.
type Stage string

const (
	StageRender  Stage = "render"
	StageTiles   Stage = "tiles"
	StageGuide   Stage = "guide"
	StageArchive Stage = "archive"
	StageNaming  Stage = "naming"
	StageDone    Stage = "done"
)

// Progress checkpoints in percent.
const (
	percentStart    = 0
	percentGrid     = 5
	percentRendered = 10
	percentTilesEnd = 90
	percentGuide    = 95
	percentArchive  = 97
	percentNaming   = 99
	percentDone     = 100
)

// ProgressFunc receives the session progress. Calls are made from the goroutine running
// the session, in order, with non-decreasing percentages.
type ProgressFunc func(percent int, stage Stage)

type progress struct {
	fn   ProgressFunc
	last int
}

func newProgress(fn ProgressFunc) *progress {
	return &progress{fn: fn, last: -1}
}

// report drops any value lower than the last one sent.
func (p *progress) report(percent int, stage Stage) {
	if percent < p.last {
		return
	}
	p.last = percent
	if p.fn != nil {
		p.fn(percent, stage)
	}
}

// tilePercent spreads the tile stage over 10..90.
func tilePercent(done, total int) int {
	if total < 1 {
		return percentTilesEnd
	}
	return percentRendered + done*(percentTilesEnd-percentRendered)/total
}
