package extract

import (
	"math"
	"sort"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

// layoutPattern classifies how experience entries are arranged on the
// page, which determines the pairing strategy.
type layoutPattern int

const (
	patternProximity layoutPattern = iota
	patternTimeline
	patternTable
	patternSidebar
)

func (p layoutPattern) String() string {
	switch p {
	case patternTimeline:
		return "timeline"
	case patternTable:
		return "table"
	case patternSidebar:
		return "sidebar"
	default:
		return "proximity"
	}
}

// Extractor turns mapped fragments into structured records.
type Extractor struct {
	cfg *config.Config
}

// NewExtractor creates a component extractor.
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract walks every mapped section and produces structured records.
// The experience section goes through component detection, layout
// pattern classification, and pairing; the other sections use simpler
// single-pass extraction.
func (e *Extractor) Extract(mapping *model.SectionMapping, la *model.LayoutAnalysis) *model.ExtractedData {
	data := model.NewExtractedData()
	if mapping == nil {
		return data
	}
	lang := ""
	if la != nil {
		lang = la.Language
	}
	p := newPatterns(e.cfg, lang)

	data.Experiences = e.extractExperiences(p, mapping.Fragments(model.SectionExperience), la)
	data.Education = e.extractEducation(p, mapping.Fragments(model.SectionEducation))
	data.Skills = e.extractSkills(mapping.Fragments(model.SectionSkills))
	data.Languages = e.extractLanguages(p, mapping.Fragments(model.SectionLanguages))
	data.Certifications = e.extractCertifications(p, mapping.Fragments(model.SectionCertifications))
	data.Projects = e.extractProjects(p, mapping.Fragments(model.SectionProjects))
	data.Awards = e.extractAwards(p, mapping.Fragments(model.SectionAwards))
	data.Volunteering = e.extractVolunteering(p, mapping.Fragments(model.SectionVolunteering))
	data.Interests = e.extractInterests(mapping.Fragments(model.SectionInterests))
	data.References = e.extractReferences(mapping.Fragments(model.SectionReferences))
	data.Summary = joinTexts(mapping.Fragments(model.SectionSummary))
	data.PersonalInfo = e.extractPersonalInfo(p, mapping)
	return data
}

// extractExperiences runs the full pipeline on the experience section:
// component detection per fragment, layout pattern classification, the
// pattern's pairing strategy, then record assembly and validation.
func (e *Extractor) extractExperiences(p *patterns, fragments []*model.TextFragment, la *model.LayoutAnalysis) []model.ExtractedExperience {
	if len(fragments) == 0 {
		return nil
	}

	var components []model.ExperienceComponent
	for _, f := range fragments {
		components = append(components, detectComponents(p, f)...)
	}
	if len(components) == 0 {
		return nil
	}

	pattern := e.classifyLayoutPattern(components, la)
	groups := e.pairComponents(components, pattern, la)

	var records []model.ExtractedExperience
	for _, group := range groups {
		rec, ok := e.assembleRecord(group)
		if ok {
			records = append(records, rec)
		}
	}

	// Most recent first; undated records sort last.
	sort.SliceStable(records, func(i, j int) bool {
		yi, yj := firstYear(records[i].DateRange), firstYear(records[j].DateRange)
		if yi == 0 {
			return false
		}
		if yj == 0 {
			return true
		}
		return yi > yj
	})
	return records
}

// detectComponents classifies each segment of a fragment into typed
// components. A fragment with no typed match becomes one description
// component.
func detectComponents(p *patterns, f *model.TextFragment) []model.ExperienceComponent {
	segments := splitSegments(f.Text)
	var comps []model.ExperienceComponent
	var untyped []string
	for _, seg := range segments {
		switch {
		case p.looksLikeDate(seg):
			comps = append(comps, component(model.ComponentDate, seg, f, 0.85))
		case p.looksLikeLocation(seg):
			comps = append(comps, component(model.ComponentLocation, seg, f, 0.7))
		case p.organizationName(seg) != "":
			comps = append(comps, component(model.ComponentOrganization, p.organizationName(seg), f, 0.8))
		case p.looksLikeTitle(seg):
			comps = append(comps, component(model.ComponentTitle, seg, f, 0.7))
		default:
			untyped = append(untyped, seg)
		}
	}
	if len(comps) == 0 {
		return []model.ExperienceComponent{component(model.ComponentDescription, f.Text, f, 0.5)}
	}
	for _, seg := range untyped {
		comps = append(comps, component(model.ComponentDescription, seg, f, 0.5))
	}
	return comps
}

func component(kind model.ComponentKind, text string, f *model.TextFragment, confidence float64) model.ExperienceComponent {
	return model.ExperienceComponent{
		Kind:       kind,
		Text:       text,
		BBox:       f.BBox,
		Confidence: confidence,
		FragmentID: f.ID,
	}
}

// classifyLayoutPattern decides which pairing strategy fits the
// component geometry: sidebar when dates concentrate inside the
// sidebar column, table when multiple columns share date offsets,
// timeline when dates consistently precede their content vertically,
// proximity otherwise.
func (e *Extractor) classifyLayoutPattern(components []model.ExperienceComponent, la *model.LayoutAnalysis) layoutPattern {
	var dates, content []model.ExperienceComponent
	for _, c := range components {
		if c.Kind == model.ComponentDate {
			dates = append(dates, c)
		} else {
			content = append(content, c)
		}
	}
	if len(dates) == 0 || len(content) == 0 {
		return patternProximity
	}
	t := e.cfg.Thresholds

	if la != nil && la.HasSidebar && la.SidebarColumn >= 0 && la.SidebarColumn < len(la.Columns) {
		sidebarX := la.Columns[la.SidebarColumn].CenterX()
		near := 0
		for _, d := range dates {
			if math.Abs(d.BBox.Center().X-sidebarX) <= t.SidebarDateDistance {
				near++
			}
		}
		if float64(near)/float64(len(dates)) > t.SidebarDateRatio {
			return patternSidebar
		}
	}

	if la != nil && la.ColumnCount > 1 && len(dates) > 1 && sharedLeftOffset(dates, t.RowBucket) {
		return patternTable
	}

	// Timeline: for each date, is the nearest content component at or
	// below the date's vertical position?
	ordered := 0
	for _, d := range dates {
		nearest := nearestComponent(d, content)
		if nearest != nil && nearest.BBox.Top >= d.BBox.Top-1 {
			ordered++
		}
	}
	if float64(ordered)/float64(len(dates)) > t.TimelineRatio {
		return patternTimeline
	}
	return patternProximity
}

// sharedLeftOffset reports whether all date components share the same
// quantized left edge.
func sharedLeftOffset(dates []model.ExperienceComponent, bucket float64) bool {
	if bucket <= 0 {
		bucket = 10
	}
	first := math.Floor(dates[0].BBox.Left / bucket)
	for _, d := range dates[1:] {
		if math.Floor(d.BBox.Left/bucket) != first {
			return false
		}
	}
	return true
}

func nearestComponent(from model.ExperienceComponent, candidates []model.ExperienceComponent) *model.ExperienceComponent {
	var best *model.ExperienceComponent
	bestDist := math.MaxFloat64
	center := from.BBox.Center()
	for i := range candidates {
		d := center.Distance(candidates[i].BBox.Center())
		if d < bestDist {
			best = &candidates[i]
			bestDist = d
		}
	}
	return best
}

// pairComponents groups components into one group per future record,
// using the strategy selected by the layout pattern.
func (e *Extractor) pairComponents(components []model.ExperienceComponent, pattern layoutPattern, la *model.LayoutAnalysis) [][]model.ExperienceComponent {
	switch pattern {
	case patternTimeline:
		return e.pairTimeline(components)
	case patternTable:
		return e.pairTable(components)
	case patternSidebar:
		return e.pairSidebar(components)
	default:
		return e.pairProximity(components)
	}
}

// pairTimeline groups components into vertical bands: sorted by top
// coordinate, a new band starts when the gap to the previous
// component's top exceeds the band tolerance.
func (e *Extractor) pairTimeline(components []model.ExperienceComponent) [][]model.ExperienceComponent {
	sorted := append([]model.ExperienceComponent(nil), components...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top < sorted[j].BBox.Top
	})

	tolerance := e.cfg.Thresholds.BandTolerance
	var groups [][]model.ExperienceComponent
	var current []model.ExperienceComponent
	lastTop := math.Inf(-1)
	for _, c := range sorted {
		if len(current) > 0 && c.BBox.Top-lastTop > tolerance {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, c)
		lastTop = c.BBox.Top
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// pairTable groups components by quantized row and orders each row
// left to right.
func (e *Extractor) pairTable(components []model.ExperienceComponent) [][]model.ExperienceComponent {
	bucket := e.cfg.Thresholds.RowBucket
	if bucket <= 0 {
		bucket = 10
	}
	rows := make(map[int][]model.ExperienceComponent)
	var keys []int
	for _, c := range components {
		row := int(math.Floor(c.BBox.Top / bucket))
		if _, seen := rows[row]; !seen {
			keys = append(keys, row)
		}
		rows[row] = append(rows[row], c)
	}
	sort.Ints(keys)

	groups := make([][]model.ExperienceComponent, 0, len(keys))
	for _, k := range keys {
		row := rows[k]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].BBox.Left < row[j].BBox.Left
		})
		groups = append(groups, row)
	}
	return groups
}

// pairSidebar anchors each group on a date component and attaches the
// closest content components (at most three) within the adjacency
// radius. Each content component is consumed at most once.
func (e *Extractor) pairSidebar(components []model.ExperienceComponent) [][]model.ExperienceComponent {
	radius := e.cfg.Thresholds.AdjacencyRadius
	var dates []model.ExperienceComponent
	var content []model.ExperienceComponent
	for _, c := range components {
		if c.Kind == model.ComponentDate {
			dates = append(dates, c)
		} else {
			content = append(content, c)
		}
	}
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].BBox.Top < dates[j].BBox.Top
	})

	consumed := make([]bool, len(content))
	var groups [][]model.ExperienceComponent
	for _, d := range dates {
		group := []model.ExperienceComponent{d}
		type candidate struct {
			idx  int
			dist float64
		}
		var candidates []candidate
		for i := range content {
			if consumed[i] {
				continue
			}
			dist := d.BBox.Center().Distance(content[i].BBox.Center())
			if dist <= radius {
				candidates = append(candidates, candidate{idx: i, dist: dist})
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].dist < candidates[j].dist
		})
		for i, c := range candidates {
			if i == 3 {
				break
			}
			consumed[c.idx] = true
			group = append(group, content[c.idx])
		}
		groups = append(groups, group)
	}
	for i := range content {
		if !consumed[i] {
			groups = append(groups, []model.ExperienceComponent{content[i]})
		}
	}
	return groups
}

// pairProximity clusters components greedily: starting from the first
// unconsumed component, it repeatedly absorbs the nearest unconsumed
// component within the adjacency radius of any group member.
func (e *Extractor) pairProximity(components []model.ExperienceComponent) [][]model.ExperienceComponent {
	radius := e.cfg.Thresholds.AdjacencyRadius
	consumed := make([]bool, len(components))
	var groups [][]model.ExperienceComponent

	for i := range components {
		if consumed[i] {
			continue
		}
		consumed[i] = true
		group := []model.ExperienceComponent{components[i]}

		for {
			bestIdx := -1
			bestDist := math.MaxFloat64
			for j := range components {
				if consumed[j] {
					continue
				}
				for _, member := range group {
					d := member.BBox.Center().Distance(components[j].BBox.Center())
					if d <= radius && d < bestDist {
						bestIdx = j
						bestDist = d
					}
				}
			}
			if bestIdx < 0 {
				break
			}
			consumed[bestIdx] = true
			group = append(group, components[bestIdx])
		}
		groups = append(groups, group)
	}
	return groups
}

// assembleRecord builds one experience record from a component group:
// the first component of each kind wins, confidence is the sum of the
// configured weights for the kinds present, and records lacking both a
// title and an organization are dropped.
func (e *Extractor) assembleRecord(group []model.ExperienceComponent) (model.ExtractedExperience, bool) {
	var rec model.ExtractedExperience
	w := e.cfg.ComponentWeights
	confidence := 0.0
	seenFrag := make(map[string]bool)

	for _, c := range group {
		if !seenFrag[c.FragmentID] {
			seenFrag[c.FragmentID] = true
			rec.FragmentIDs = append(rec.FragmentIDs, c.FragmentID)
		}
		switch c.Kind {
		case model.ComponentDate:
			if rec.DateRange == "" {
				rec.DateRange = c.Text
				confidence += w.Date
			}
		case model.ComponentTitle:
			if rec.Title == "" {
				rec.Title = c.Text
				confidence += w.Title
			}
		case model.ComponentOrganization:
			if rec.Organization == "" {
				rec.Organization = c.Text
				confidence += w.Organization
			}
		case model.ComponentLocation:
			if rec.Location == "" {
				rec.Location = c.Text
				confidence += w.Location
			}
		case model.ComponentDescription:
			if rec.Description == "" {
				rec.Description = c.Text
				confidence += w.Description
			}
		}
	}

	if rec.Title == "" && rec.Organization == "" {
		return rec, false
	}
	rec.Confidence = model.ClampScore(confidence)
	return rec, true
}

func joinTexts(fragments []*model.TextFragment) string {
	var parts []string
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return joinNonEmpty(parts, " ")
}

func joinNonEmpty(parts []string, sep string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return ""
	}
	result := out[0]
	for _, p := range out[1:] {
		result += sep + p
	}
	return result
}
