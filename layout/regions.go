package layout

import (
	"regexp"
	"strings"

	"github.com/Kojynth/cvmatch-sub004/model"
)

// pageNumberPattern matches "3", "page 3", "3 / 12", "3 of 12" style
// footer content.
var pageNumberPattern = regexp.MustCompile(`(?i)^\s*(page\s+)?\d+(\s*(/|of|de|von)\s*\d+)?\s*$`)

// detectRegions classifies fragments inside the top and bottom bands
// of each page's vertical extent as header or footer candidates when
// they are short or match known header/footer vocabulary.
func (a *Analyzer) detectRegions(fragments []*model.TextFragment, result *model.LayoutAnalysis) {
	byPage := make(map[int][]*model.TextFragment)
	for _, f := range fragments {
		byPage[f.Page] = append(byPage[f.Page], f)
	}

	band := a.config.Thresholds.HeaderFooterBand
	for page, frags := range byPage {
		top, bottom := verticalExtent(frags)
		extent := bottom - top
		if extent <= 0 {
			continue
		}
		headerLimit := top + extent*band
		footerLimit := bottom - extent*band

		var headerIDs, footerIDs []string
		var headerBox, footerBox model.BBox
		for _, f := range frags {
			if !a.looksLikeFurniture(f) {
				continue
			}
			switch {
			case f.BBox.Bottom <= headerLimit:
				if len(headerIDs) == 0 {
					headerBox = f.BBox
				} else {
					headerBox = headerBox.Union(f.BBox)
				}
				headerIDs = append(headerIDs, f.ID)
			case f.BBox.Top >= footerLimit:
				if len(footerIDs) == 0 {
					footerBox = f.BBox
				} else {
					footerBox = footerBox.Union(f.BBox)
				}
				footerIDs = append(footerIDs, f.ID)
			}
		}

		if len(headerIDs) > 0 {
			result.HasHeader = true
			result.Regions = append(result.Regions, model.StructuralRegion{
				Type:        model.RegionHeader,
				Page:        page,
				BBox:        headerBox,
				FragmentIDs: headerIDs,
			})
		}
		if len(footerIDs) > 0 {
			result.HasFooter = true
			result.Regions = append(result.Regions, model.StructuralRegion{
				Type:        model.RegionFooter,
				Page:        page,
				BBox:        footerBox,
				FragmentIDs: footerIDs,
			})
		}
	}
}

// looksLikeFurniture reports whether a fragment reads like page
// furniture: a page number, a known header/footer word, or very short
// text.
func (a *Analyzer) looksLikeFurniture(f *model.TextFragment) bool {
	text := strings.TrimSpace(f.Text)
	if text == "" {
		return false
	}
	if pageNumberPattern.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, word := range a.cfg.HeaderFooterVocab {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return len(strings.Fields(text)) <= 2 && len([]rune(text)) <= 20
}

// detectSidebar marks the narrowest column as a sidebar when at least
// two columns exist and its width is below the configured fraction of
// the widest column. The side is taken from the extreme of the column
// center positions.
func (a *Analyzer) detectSidebar(result *model.LayoutAnalysis) {
	if len(result.Columns) < 2 {
		return
	}

	narrowest, widest := result.Columns[0], result.Columns[0]
	for _, col := range result.Columns[1:] {
		if col.BBox.Width() < narrowest.BBox.Width() {
			narrowest = col
		}
		if col.BBox.Width() > widest.BBox.Width() {
			widest = col
		}
	}
	if widest.BBox.Width() <= 0 {
		return
	}
	if narrowest.BBox.Width() >= a.config.Thresholds.SidebarWidthRatio*widest.BBox.Width() {
		return
	}

	result.HasSidebar = true
	result.SidebarColumn = narrowest.ID

	minCenter, maxCenter := result.Columns[0].CenterX(), result.Columns[0].CenterX()
	for _, col := range result.Columns[1:] {
		if c := col.CenterX(); c < minCenter {
			minCenter = c
		} else if c > maxCenter {
			maxCenter = c
		}
	}
	switch narrowest.CenterX() {
	case minCenter:
		result.SidebarSide = model.SidebarLeft
	case maxCenter:
		result.SidebarSide = model.SidebarRight
	default:
		result.SidebarSide = model.SidebarCenter
	}

	bbox := narrowest.BBox
	ids := make([]string, 0, len(narrowest.Fragments))
	for _, f := range narrowest.Fragments {
		ids = append(ids, f.ID)
	}
	result.Regions = append(result.Regions, model.StructuralRegion{
		Type:        model.RegionSidebar,
		Page:        pageOf(narrowest),
		BBox:        bbox,
		FragmentIDs: ids,
	})
}

func pageOf(col *model.Column) int {
	if len(col.Fragments) == 0 {
		return 0
	}
	return col.Fragments[0].Page
}

func verticalExtent(fragments []*model.TextFragment) (top, bottom float64) {
	top = fragments[0].BBox.Top
	bottom = fragments[0].BBox.Bottom
	for _, f := range fragments[1:] {
		if f.BBox.Top < top {
			top = f.BBox.Top
		}
		if f.BBox.Bottom > bottom {
			bottom = f.BBox.Bottom
		}
	}
	return top, bottom
}
