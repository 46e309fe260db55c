package normalize

import (
	"sort"
	"strings"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/model"
)

// Normalizer canonicalizes every raw extracted value. It holds no
// per-document state: one instance may serve concurrent runs.
type Normalizer struct {
	cfg *config.Config

	// DefaultPhoneRegion is the region used to parse phone numbers
	// that carry no country prefix. Default "US".
	DefaultPhoneRegion string
}

// NewNormalizer creates a field normalizer.
func NewNormalizer(cfg *config.Config) *Normalizer {
	return &Normalizer{cfg: cfg, DefaultPhoneRegion: "US"}
}

// Normalize canonicalizes the extracted data. It is a pure function of
// its input and the configuration tables; it performs no I/O and never
// fails: every unresolvable field degrades to an unresolved value with
// reduced confidence.
func (n *Normalizer) Normalize(data *model.ExtractedData) *model.NormalizedData {
	return n.NormalizeForLanguage(data, "")
}

// NormalizeForLanguage is Normalize with an explicit document language
// driving the ongoing-keyword and month-name tables.
func (n *Normalizer) NormalizeForLanguage(data *model.ExtractedData, lang string) *model.NormalizedData {
	out := &model.NormalizedData{}
	if data == nil {
		return out
	}
	dates := &dateNormalizer{cfg: n.cfg, lang: lang}
	locations := &locationNormalizer{cfg: n.cfg}
	languages := &languageNormalizer{cfg: n.cfg}
	titles := &titleNormalizer{cfg: n.cfg}

	out.PersonalInfo = n.normalizePersonalInfo(data.PersonalInfo, locations)
	out.Summary = strings.TrimSpace(data.Summary)

	for _, exp := range data.Experiences {
		rec := model.NormalizedExperience{
			Organization: exp.Organization,
			Description:  exp.Description,
			Confidence:   exp.Confidence,
			FragmentIDs:  exp.FragmentIDs,
		}
		if exp.Title != "" {
			rec.Title = titles.NormalizeJobTitle(exp.Title)
		}
		if exp.Location != "" {
			rec.Location = locations.NormalizeLocation(exp.Location)
		}
		if exp.DateRange != "" {
			rec.DateRange = dates.NormalizeDateRange(exp.DateRange)
		}
		out.Experiences = append(out.Experiences, rec)
	}

	for _, edu := range data.Education {
		rec := model.NormalizedEducation{
			Degree:      edu.Degree,
			Institution: edu.Institution,
			Description: edu.Description,
			GPA:         edu.GPA,
			Confidence:  edu.Confidence,
		}
		if edu.Location != "" {
			rec.Location = locations.NormalizeLocation(edu.Location)
		}
		if edu.DateRange != "" {
			rec.DateRange = dates.NormalizeDateRange(edu.DateRange)
		}
		out.Education = append(out.Education, rec)
	}

	out.Skills = append(out.Skills, data.Skills...)

	for _, entry := range data.Languages {
		out.Languages = append(out.Languages, languages.NormalizeLanguage(entry))
	}

	out.Certifications = n.normalizeCertifications(data.Certifications)

	out.Projects = append(out.Projects, data.Projects...)
	out.Awards = append(out.Awards, data.Awards...)
	out.Volunteering = append(out.Volunteering, data.Volunteering...)
	out.Interests = append(out.Interests, data.Interests...)
	out.References = append(out.References, data.References...)
	return out
}

func (n *Normalizer) normalizePersonalInfo(info model.ExtractedPersonalInfo, locations *locationNormalizer) model.NormalizedPersonalInfo {
	out := model.NormalizedPersonalInfo{
		Name:  strings.TrimSpace(info.Name),
		Links: info.Links,
	}
	if info.Email != "" {
		out.Contact.Email, out.Contact.EmailValid = NormalizeEmail(info.Email)
	}
	if info.Phone != "" {
		out.Contact.Phone = info.Phone
		e164, region, carrier, valid := NormalizePhone(info.Phone, n.DefaultPhoneRegion)
		out.Contact.PhoneValid = valid
		if valid {
			out.Contact.PhoneE164 = e164
			out.Contact.PhoneRegion = region
			out.Contact.PhoneCarrier = carrier
		}
	}
	if info.Address != "" {
		out.Location = locations.NormalizeLocation(info.Address)
	}
	return out
}

// normalizeCertifications canonicalizes certification names and merges
// duplicates: two records with the same canonical name and level
// become one record carrying the maximum of their confidences.
func (n *Normalizer) normalizeCertifications(certs []model.ExtractedCertification) []model.NormalizedCertification {
	type key struct {
		name  string
		level string
	}
	merged := make(map[key]*model.NormalizedCertification)
	var order []key
	for _, c := range certs {
		name := canonicalCertName(c.Name)
		if name == "" {
			continue
		}
		k := key{name: strings.ToLower(name), level: strings.ToLower(c.Level)}
		if existing, ok := merged[k]; ok {
			if c.Confidence > existing.Confidence {
				existing.Confidence = c.Confidence
			}
			if existing.Issuer == "" {
				existing.Issuer = c.Issuer
			}
			if existing.Year == 0 {
				existing.Year = c.Year
			}
			continue
		}
		merged[k] = &model.NormalizedCertification{
			Name:       name,
			Level:      c.Level,
			Issuer:     c.Issuer,
			Year:       c.Year,
			Confidence: c.Confidence,
		}
		order = append(order, k)
	}

	out := make([]model.NormalizedCertification, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// canonicalCertName collapses whitespace and trims list punctuation so
// that trivially different spellings of the same certification merge.
func canonicalCertName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return strings.Trim(name, " -–—•,")
}
