package layout

import (
	"sort"
	"strings"

	"github.com/Kojynth/cvmatch-sub004/cluster"
	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

// Config holds configuration options for the layout analyzer.
type Config struct {
	// Thresholds are the shared heuristic constants.
	Thresholds config.Thresholds

	// MinColumnGap is the minimum distance between cluster centers for
	// them to remain separate columns; closer clusters are merged.
	// Default: 40 units.
	MinColumnGap float64

	// FragmentCountSaturation is the fragment count at which the
	// fragment-adequacy confidence factor saturates. Default: 20.
	FragmentCountSaturation int

	// TextLengthSaturation is the average fragment text length at
	// which the length-adequacy factor saturates. Default: 50.
	TextLengthSaturation int
}

// DefaultConfig returns sensible defaults for CV-style documents.
func DefaultConfig() Config {
	return Config{
		Thresholds:              config.DefaultThresholds(),
		MinColumnGap:            40.0,
		FragmentCountSaturation: 20,
		TextLengthSaturation:    50,
	}
}

// Analyzer determines the geometric structure of a fragment set.
type Analyzer struct {
	config    Config
	clusterer cluster.Clusterer
	cfg       *config.Config
}

// NewAnalyzer creates a layout analyzer with default configuration.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	c := DefaultConfig()
	c.Thresholds = cfg.Thresholds
	return NewAnalyzerWithConfig(cfg, c)
}

// NewAnalyzerWithConfig creates a layout analyzer with the specified
// configuration.
func NewAnalyzerWithConfig(cfg *config.Config, c Config) *Analyzer {
	return &Analyzer{
		config:    c,
		clusterer: cluster.NewKMeans(),
		cfg:       cfg,
	}
}

// SetClusterer swaps the clustering implementation. Intended for
// callers that want to plug in a different algorithm; the built-in
// k-means already has a deterministic single-column fallback.
func (a *Analyzer) SetClusterer(c cluster.Clusterer) {
	if c != nil {
		a.clusterer = c
	}
}

// Analyze determines language, script, direction, columns, reading
// order, structural regions, and a layout confidence for the given
// fragments. Fragments are annotated in place with column and reading
// order assignments. Empty input yields a zero-column, zero-confidence
// result rather than an error.
func (a *Analyzer) Analyze(fragments []*model.TextFragment) *model.LayoutAnalysis {
	result := &model.LayoutAnalysis{
		SidebarColumn: -1,
	}
	if len(fragments) == 0 {
		return result
	}

	for _, f := range fragments {
		f.EnsureID()
		f.BBox = f.BBox.Normalized()
		f.ReadingOrder = -1
		f.ColumnID = -1
	}

	a.detectLanguage(fragments, result)

	result.Columns = a.detectColumns(fragments)
	result.ColumnCount = len(result.Columns)

	a.assignReadingOrder(fragments, result)

	a.detectRegions(fragments, result)
	a.detectSidebar(result)

	result.Confidence = model.ClampScore(a.confidence(fragments, result))
	return result
}

// detectLanguage runs language identification over the concatenated
// text and independently counts characters by script family. The RTL
// decision takes whichever signal is stronger: a known RTL language or
// script, or an RTL character share above the configured fraction.
func (a *Analyzer) detectLanguage(fragments []*model.TextFragment, result *model.LayoutAnalysis) {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f.Text)
		sb.WriteByte(' ')
	}
	text := sb.String()

	result.Language = DetectLanguage(text)

	counts := CountScripts(text)
	script := DominantScript(counts)
	result.Script = string(script)

	result.IsRTLLayout = rtlLanguages[result.Language] ||
		rtlScripts[script] ||
		RTLFraction(counts) > a.config.Thresholds.RTLFraction
}

// detectColumns clusters fragment horizontal centers and builds the
// column list, re-sorted left to right with stable ids. Clustering
// failure at any k falls back to a single column.
func (a *Analyzer) detectColumns(fragments []*model.TextFragment) []*model.Column {
	if len(fragments) == 1 {
		return a.singleColumn(fragments)
	}

	centers := make([]float64, len(fragments))
	for i, f := range fragments {
		centers[i] = f.BBox.Center().X
	}

	maxK := a.config.Thresholds.MaxColumns
	k, res := cluster.SelectK(a.clusterer, centers, maxK, a.config.Thresholds.FlatSignalColumns)
	if k <= 1 || res == nil {
		return a.singleColumn(fragments)
	}

	groups := make(map[int][]*model.TextFragment)
	groupCenter := make(map[int]float64)
	for i, f := range fragments {
		c := res.Assignments[i]
		groups[c] = append(groups[c], f)
		groupCenter[c] = res.Centers[c]
	}

	// Merge clusters whose centers sit closer than the minimum column
	// gap; a flat elbow signal otherwise splits single-column text.
	merged := mergeCloseGroups(groups, groupCenter, a.config.MinColumnGap)
	if len(merged) <= 1 {
		return a.singleColumn(fragments)
	}

	columns := make([]*model.Column, 0, len(merged))
	for _, frags := range merged {
		columns = append(columns, buildColumn(frags))
	}

	sort.Slice(columns, func(i, j int) bool {
		return columns[i].CenterX() < columns[j].CenterX()
	})
	for i, col := range columns {
		col.ID = i
		col.Order = i
		for _, f := range col.Fragments {
			f.ColumnID = i
		}
	}
	return columns
}

func (a *Analyzer) singleColumn(fragments []*model.TextFragment) []*model.Column {
	col := buildColumn(fragments)
	col.ID = 0
	col.Order = 0
	for _, f := range col.Fragments {
		f.ColumnID = 0
	}
	return []*model.Column{col}
}

// mergeCloseGroups merges fragment groups whose centers are within
// minGap of each other or whose horizontal extents overlap, returning
// the surviving groups ordered by center position. Genuine columns
// never share horizontal space; overlapping groups are artifacts of
// clustering mixed-width fragments of a single column.
func mergeCloseGroups(groups map[int][]*model.TextFragment, centers map[int]float64, minGap float64) [][]*model.TextFragment {
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return centers[ids[i]] < centers[ids[j]]
	})

	var merged [][]*model.TextFragment
	var mergedCenters []float64
	var mergedRight []float64
	for _, id := range ids {
		frags := groups[id]
		c := centers[id]
		left, right := horizontalExtent(frags)
		if n := len(merged); n > 0 && (c-mergedCenters[n-1] < minGap || left < mergedRight[n-1]) {
			merged[n-1] = append(merged[n-1], frags...)
			if right > mergedRight[n-1] {
				mergedRight[n-1] = right
			}
			continue
		}
		merged = append(merged, append([]*model.TextFragment(nil), frags...))
		mergedCenters = append(mergedCenters, c)
		mergedRight = append(mergedRight, right)
	}
	return merged
}

func horizontalExtent(fragments []*model.TextFragment) (left, right float64) {
	left = fragments[0].BBox.Left
	right = fragments[0].BBox.Right
	for _, f := range fragments[1:] {
		if f.BBox.Left < left {
			left = f.BBox.Left
		}
		if f.BBox.Right > right {
			right = f.BBox.Right
		}
	}
	return left, right
}

func buildColumn(fragments []*model.TextFragment) *model.Column {
	sorted := append([]*model.TextFragment(nil), fragments...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].BBox.Top != sorted[j].BBox.Top {
			return sorted[i].BBox.Top < sorted[j].BBox.Top
		}
		return sorted[i].BBox.Left < sorted[j].BBox.Left
	})

	bbox := sorted[0].BBox
	for _, f := range sorted[1:] {
		bbox = bbox.Union(f.BBox)
	}
	return &model.Column{
		BBox:      bbox,
		Fragments: sorted,
	}
}

// assignReadingOrder orders columns by center position (reversed for
// RTL layouts), walks each column top to bottom, and assigns a single
// global column-major reading index.
func (a *Analyzer) assignReadingOrder(fragments []*model.TextFragment, result *model.LayoutAnalysis) {
	ordered := append([]*model.Column(nil), result.Columns...)
	sort.Slice(ordered, func(i, j int) bool {
		if result.IsRTLLayout {
			return ordered[i].CenterX() > ordered[j].CenterX()
		}
		return ordered[i].CenterX() < ordered[j].CenterX()
	})

	index := 0
	result.ReadingOrder = make([]string, 0, len(fragments))
	for orderIdx, col := range ordered {
		col.Order = orderIdx
		for _, f := range col.Fragments {
			f.ReadingOrder = index
			result.ReadingOrder = append(result.ReadingOrder, f.ID)
			index++
		}
	}
}

// confidence is the unweighted mean of three factors: fragment-count
// adequacy, intra-column left-edge alignment consistency, and average
// text length adequacy.
func (a *Analyzer) confidence(fragments []*model.TextFragment, result *model.LayoutAnalysis) float64 {
	countFactor := float64(len(fragments)) / float64(a.config.FragmentCountSaturation)
	if countFactor > 1 {
		countFactor = 1
	}

	alignFactor := a.alignmentConsistency(result.Columns)

	totalLen := 0
	for _, f := range fragments {
		totalLen += len([]rune(f.Text))
	}
	avgLen := float64(totalLen) / float64(len(fragments))
	lenFactor := avgLen / float64(a.config.TextLengthSaturation)
	if lenFactor > 1 {
		lenFactor = 1
	}

	return (countFactor + alignFactor + lenFactor) / 3
}

// alignmentConsistency scores how tightly each column's fragments
// share a left edge: the inverse of the mean left-edge variance,
// scaled so a variance of zero scores 1.
func (a *Analyzer) alignmentConsistency(columns []*model.Column) float64 {
	if len(columns) == 0 {
		return 0
	}
	total := 0.0
	for _, col := range columns {
		if len(col.Fragments) < 2 {
			total += 1
			continue
		}
		mean := 0.0
		for _, f := range col.Fragments {
			mean += f.BBox.Left
		}
		mean /= float64(len(col.Fragments))
		variance := 0.0
		for _, f := range col.Fragments {
			d := f.BBox.Left - mean
			variance += d * d
		}
		variance /= float64(len(col.Fragments))
		total += 1 / (1 + variance/100)
	}
	return total / float64(len(columns))
}
