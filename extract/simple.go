package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Kojynth/cvmatch-sub004/model"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+|00)?[\d][\d .()\-]{7,}\d`)

	// skillSplitPattern separates skill lists on common delimiters.
	skillSplitPattern = regexp.MustCompile(`\s*[,;•·|/]\s*`)

	// levelAnnotationPattern captures "(advanced)" style annotations.
	levelAnnotationPattern = regexp.MustCompile(`^(.*?)\s*[\(:]\s*([^)]+?)\s*\)?$`)
)

// extractEducation walks education fragments in reading order with a
// single pass: date and degree signals open or fill the current
// record, remaining text accumulates as description.
func (e *Extractor) extractEducation(p *patterns, fragments []*model.TextFragment) []model.ExtractedEducation {
	var records []model.ExtractedEducation
	var current *model.ExtractedEducation

	flush := func() {
		if current != nil {
			current.Confidence = educationConfidence(current)
			records = append(records, *current)
			current = nil
		}
	}

	for _, f := range fragments {
		degree, institution := e.classifyEducationText(f.Text)
		hasAnchor := degree != "" || institution != ""

		if hasAnchor && current != nil && (current.Degree != "" || current.Institution != "") {
			// A new degree or institution line starts the next record
			// unless it completes the current one.
			if (degree != "" && current.Degree != "") ||
				(institution != "" && current.Institution != "") {
				flush()
			}
		}
		if current == nil {
			current = &model.ExtractedEducation{}
		}
		current.FragmentIDs = append(current.FragmentIDs, f.ID)

		if degree != "" && current.Degree == "" {
			current.Degree = degree
		}
		if institution != "" && current.Institution == "" {
			current.Institution = institution
		}
		for _, seg := range splitSegments(f.Text) {
			switch {
			case p.looksLikeDate(seg) && current.DateRange == "":
				current.DateRange = seg
			case p.looksLikeLocation(seg) && current.Location == "":
				current.Location = seg
			}
		}
		if m := gpaPattern.FindStringSubmatch(f.Text); m != nil && current.GPA == "" {
			current.GPA = m[2]
		}
		if !hasAnchor && current.Description == "" && !p.looksLikeDate(strings.TrimSpace(f.Text)) {
			current.Description = f.Text
		}
	}
	flush()
	return records
}

// classifyEducationText finds degree and institution mentions in a
// line of the education section.
func (e *Extractor) classifyEducationText(text string) (degree, institution string) {
	lower := strings.ToLower(text)
	for _, w := range e.cfg.DegreeWords {
		if containsWord(lower, w) {
			degree = strings.TrimSpace(text)
			break
		}
	}
	for _, w := range e.cfg.InstitutionWords {
		if containsWord(lower, w) {
			institution = strings.TrimSpace(text)
			break
		}
	}
	if degree != "" && institution != "" {
		// One line naming both: split on the first comma when
		// possible, otherwise let the degree win.
		if idx := strings.Index(text, ","); idx > 0 {
			degree = strings.TrimSpace(text[:idx])
			institution = strings.TrimSpace(text[idx+1:])
		} else {
			institution = ""
		}
	}
	return degree, institution
}

func educationConfidence(rec *model.ExtractedEducation) float64 {
	score := 0.0
	if rec.Degree != "" {
		score += 0.35
	}
	if rec.Institution != "" {
		score += 0.35
	}
	if rec.DateRange != "" {
		score += 0.2
	}
	if rec.Location != "" || rec.GPA != "" {
		score += 0.1
	}
	return model.ClampScore(score)
}

// extractSkills splits each fragment on list delimiters, capturing an
// optional level annotation per entry.
func (e *Extractor) extractSkills(fragments []*model.TextFragment) []model.ExtractedSkill {
	var skills []model.ExtractedSkill
	seen := make(map[string]bool)
	for _, f := range fragments {
		for _, part := range skillSplitPattern.Split(f.Text, -1) {
			part = strings.TrimSpace(part)
			if part == "" || len(part) > 60 {
				continue
			}
			name, level := splitLevelAnnotation(part)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				continue
			}
			seen[key] = true
			skills = append(skills, model.ExtractedSkill{
				Name:       name,
				RawLevel:   level,
				Confidence: 0.7,
				FragmentID: f.ID,
			})
		}
	}
	return skills
}

// splitLevelAnnotation separates "Go (advanced)" or "Go: advanced"
// into name and level.
func splitLevelAnnotation(text string) (name, level string) {
	if m := levelAnnotationPattern.FindStringSubmatch(text); m != nil && m[1] != "" && m[2] != "" {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return text, ""
}

// extractLanguages finds language names and raw proficiency phrases,
// including certification scores such as "TOEIC 950".
func (e *Extractor) extractLanguages(p *patterns, fragments []*model.TextFragment) []model.ExtractedLanguage {
	var langs []model.ExtractedLanguage
	for _, f := range fragments {
		for _, part := range skillSplitPattern.Split(f.Text, -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if m := certScorePattern.FindStringSubmatch(part); m != nil {
				langs = append(langs, model.ExtractedLanguage{
					Name:       m[1],
					RawLevel:   part,
					Confidence: 0.85,
					FragmentID: f.ID,
				})
				continue
			}
			name, level := splitLevelAnnotation(part)
			if name == "" {
				continue
			}
			if lang := e.knownLanguage(name); lang != "" {
				if level == "" {
					name, level = splitTrailingLevel(name)
				}
				langs = append(langs, model.ExtractedLanguage{
					Name:       lang,
					RawLevel:   level,
					Confidence: 0.75,
					FragmentID: f.ID,
				})
			}
		}
	}
	return langs
}

// knownLanguage returns the canonical language cluster for a token of
// the text, or "".
func (e *Extractor) knownLanguage(text string) string {
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,:;-")
		if lang, ok := e.cfg.LanguageNames[tok]; ok {
			return lang
		}
	}
	return ""
}

// splitTrailingLevel handles "English fluent" style entries without a
// delimiter between name and level.
func splitTrailingLevel(text string) (name, level string) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return text, ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// extractCertifications captures certification names with optional
// issuer and year.
func (e *Extractor) extractCertifications(p *patterns, fragments []*model.TextFragment) []model.ExtractedCertification {
	var certs []model.ExtractedCertification
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" || p.looksLikeDate(text) {
			continue
		}
		cert := model.ExtractedCertification{
			Name:       text,
			Year:       firstYear(text),
			Confidence: 0.7,
			FragmentID: f.ID,
		}
		lower := strings.ToLower(text)
		for _, issuer := range e.cfg.IssuerWords {
			if containsWord(lower, issuer) {
				cert.Issuer = issuer
				cert.Confidence = 0.8
				break
			}
		}
		if cert.Year > 0 {
			cert.Name = strings.TrimSpace(yearPattern.ReplaceAllString(cert.Name, ""))
			cert.Name = strings.Trim(cert.Name, " -–—,()")
		}
		if cert.Name != "" {
			certs = append(certs, cert)
		}
	}
	return certs
}

// extractProjects groups project fragments: a header-ish short line
// starts a project, following lines fill description, technologies,
// and URL.
func (e *Extractor) extractProjects(p *patterns, fragments []*model.TextFragment) []model.ExtractedProject {
	var projects []model.ExtractedProject
	var current *model.ExtractedProject

	flush := func() {
		if current != nil && current.Name != "" {
			current.Confidence = model.ClampScore(0.4 + 0.2*float64(len(current.Technologies)) + boolScore(current.Description != "", 0.2) + boolScore(current.URL != "", 0.2))
			projects = append(projects, *current)
		}
		current = nil
	}

	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		short := len(strings.Fields(text)) <= 5
		if short && !strings.HasSuffix(text, ".") {
			flush()
			current = &model.ExtractedProject{Name: text}
			current.FragmentIDs = append(current.FragmentIDs, f.ID)
			continue
		}
		if current == nil {
			current = &model.ExtractedProject{Name: firstSentence(text)}
		}
		current.FragmentIDs = append(current.FragmentIDs, f.ID)
		if url := urlPattern.FindString(text); url != "" && current.URL == "" {
			current.URL = url
		}
		if techs := techList(text); len(techs) > 0 {
			current.Technologies = append(current.Technologies, techs...)
		} else if current.Description == "" {
			current.Description = text
		}
		for _, seg := range splitSegments(text) {
			if p.looksLikeDate(seg) && current.DateRange == "" {
				current.DateRange = seg
			}
		}
	}
	flush()
	return projects
}

var techMarkerPattern = regexp.MustCompile(`(?i)^\s*(tech(nologies)?|stack|tools|built with)\s*:\s*(.+)$`)

func techList(text string) []string {
	m := techMarkerPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var techs []string
	for _, t := range skillSplitPattern.Split(m[3], -1) {
		t = strings.TrimSpace(t)
		if t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}

func firstSentence(text string) string {
	if idx := strings.IndexAny(text, ".!?"); idx > 0 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}

func boolScore(b bool, w float64) float64 {
	if b {
		return w
	}
	return 0
}

// extractAwards captures one award per fragment with optional year.
func (e *Extractor) extractAwards(p *patterns, fragments []*model.TextFragment) []model.ExtractedAward {
	var awards []model.ExtractedAward
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		award := model.ExtractedAward{
			Title:      text,
			Year:       firstYear(text),
			Confidence: 0.65,
			FragmentID: f.ID,
		}
		if org := p.organizationName(text); org != "" && org != text {
			award.Issuer = org
		}
		awards = append(awards, award)
	}
	return awards
}

// extractVolunteering mirrors the experience extraction in a single
// pass: role and organization from typed segments, remaining text as
// description.
func (e *Extractor) extractVolunteering(p *patterns, fragments []*model.TextFragment) []model.ExtractedVolunteering {
	var records []model.ExtractedVolunteering
	var current *model.ExtractedVolunteering

	flush := func() {
		if current != nil && (current.Role != "" || current.Organization != "" || current.Description != "") {
			current.Confidence = model.ClampScore(boolScore(current.Role != "", 0.35) +
				boolScore(current.Organization != "", 0.35) +
				boolScore(current.DateRange != "", 0.2) +
				boolScore(current.Description != "", 0.1))
			records = append(records, *current)
		}
		current = nil
	}

	for _, f := range fragments {
		anchored := false
		for _, seg := range splitSegments(f.Text) {
			org := p.organizationName(seg)
			switch {
			case p.looksLikeDate(seg):
				if current == nil {
					current = &model.ExtractedVolunteering{}
				}
				if current.DateRange == "" {
					current.DateRange = seg
				}
			case org != "":
				if current != nil && current.Organization != "" {
					flush()
				}
				if current == nil {
					current = &model.ExtractedVolunteering{}
				}
				current.Organization = org
				anchored = true
			case p.looksLikeTitle(seg):
				if current != nil && current.Role != "" && !anchored {
					flush()
				}
				if current == nil {
					current = &model.ExtractedVolunteering{}
				}
				if current.Role == "" {
					current.Role = seg
				}
			default:
				if current == nil {
					current = &model.ExtractedVolunteering{}
				}
				if current.Description == "" {
					current.Description = seg
				}
			}
		}
		if current != nil {
			current.FragmentIDs = append(current.FragmentIDs, f.ID)
		}
	}
	flush()
	return records
}

// extractInterests flattens interest fragments into short entries.
func (e *Extractor) extractInterests(fragments []*model.TextFragment) []string {
	var interests []string
	seen := make(map[string]bool)
	for _, f := range fragments {
		for _, part := range skillSplitPattern.Split(f.Text, -1) {
			part = strings.TrimSpace(part)
			key := strings.ToLower(part)
			if part == "" || seen[key] || len(strings.Fields(part)) > 6 {
				continue
			}
			seen[key] = true
			interests = append(interests, part)
		}
	}
	return interests
}

// extractReferences captures one reference per fragment: a name line
// with optional contact details.
func (e *Extractor) extractReferences(fragments []*model.TextFragment) []model.ExtractedReference {
	var refs []model.ExtractedReference
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" || strings.Contains(strings.ToLower(text), "request") {
			// "References available upon request" is a placeholder,
			// not a reference.
			continue
		}
		ref := model.ExtractedReference{
			Name:       firstSentence(text),
			Confidence: 0.6,
			FragmentID: f.ID,
		}
		if email := emailPattern.FindString(text); email != "" {
			ref.Contact = email
		} else if phone := phonePattern.FindString(text); phone != "" {
			ref.Contact = strings.TrimSpace(phone)
		}
		refs = append(refs, ref)
	}
	return refs
}

// extractPersonalInfo scans the personal info section plus any
// unmapped fragments: contact fields routinely sit in an unlabeled
// page header that the mapper cannot attribute to a section.
func (e *Extractor) extractPersonalInfo(p *patterns, mapping *model.SectionMapping) model.ExtractedPersonalInfo {
	info := model.ExtractedPersonalInfo{}
	candidates := append([]*model.TextFragment(nil), mapping.Fragments(model.SectionPersonalInfo)...)
	candidates = append(candidates, mapping.Unmapped...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ReadingOrder < candidates[j].ReadingOrder
	})

	fields := 0
	for _, f := range candidates {
		matched := false
		if email := emailPattern.FindString(f.Text); email != "" && info.Email == "" {
			info.Email = email
			matched = true
			fields++
		}
		if url := urlPattern.FindString(f.Text); url != "" {
			info.Links = append(info.Links, url)
			matched = true
		}
		if info.Email == "" || !strings.Contains(f.Text, info.Email) {
			// A year range like "2016 - 2019" also matches the phone
			// shape; date-like candidates never claim the phone slot.
			if phone := phonePattern.FindString(f.Text); phone != "" && info.Phone == "" &&
				!urlPattern.MatchString(f.Text) && !p.looksLikeDate(phone) {
				info.Phone = strings.TrimSpace(phone)
				matched = true
				fields++
			}
		}
		if matched {
			info.FragmentIDs = append(info.FragmentIDs, f.ID)
		}
	}

	if name := candidateName(candidates); name != "" {
		info.Name = name
		fields++
	}
	info.Confidence = model.ClampScore(float64(fields) / 3)
	return info
}

// candidateName picks the most name-like fragment: a short line of
// capitalized words near the start of the reading order, without
// digits or contact patterns.
func candidateName(fragments []*model.TextFragment) string {
	for _, f := range fragments {
		if f.ReadingOrder > 5 {
			break
		}
		text := strings.TrimSpace(f.Text)
		words := strings.Fields(text)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if strings.ContainsAny(text, "0123456789@/:") {
			continue
		}
		allCapitalized := true
		for _, w := range words {
			r := []rune(w)[0]
			if !strings.ContainsRune("'-", r) && !isUpperRune(r) {
				allCapitalized = false
				break
			}
		}
		if allCapitalized {
			return text
		}
	}
	return ""
}

func isUpperRune(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= 'À' && r <= 'Þ'
}
