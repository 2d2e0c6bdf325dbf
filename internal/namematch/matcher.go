package namematch

// Orientation identifies how document given/family map onto the parsed
// profile components. Documents and profiles disagree on order often enough
// (family-name-first conventions, "Family, Given" entry) that both mappings
// are scored symmetrically and the better one wins.
type Orientation string

const (
	// OrientationNatural maps document given onto profile given and document
	// family onto profile family.
	OrientationNatural Orientation = "natural"
	// OrientationSwapped maps document given onto profile family and vice
	// versa.
	OrientationSwapped Orientation = "swapped"
)

// Policy holds the thresholds a match must clear.
type Policy struct {
	// ComponentThreshold is the minimum per-component score for the
	// component match flag.
	ComponentThreshold float64
	// OverallThreshold is the minimum aggregate score for an overall pass.
	OverallThreshold float64
}

// DefaultPolicy requires a strong aggregate plus at least one independently
// strong component. A single damaged OCR field does not reject a match when
// the remaining field and the aggregate are both strong.
var DefaultPolicy = Policy{
	ComponentThreshold: 0.80,
	OverallThreshold:   0.85,
}

// FieldMatch is the outcome for a single name field.
type FieldMatch struct {
	DocumentValue string  `json:"document_value"`
	ProfileValue  string  `json:"profile_value"`
	Matched       bool    `json:"matched"`
	Score         float64 `json:"score"`
}

// Result is the outcome of matching a document name against a profile name.
type Result struct {
	Score       float64     `json:"score"`
	Passed      bool        `json:"passed"`
	Orientation Orientation `json:"orientation"`
	Given       FieldMatch  `json:"given"`
	Family      FieldMatch  `json:"family"`
}

// orientationScore carries one orientation's component scores and the
// profile values resolved under that mapping.
type orientationScore struct {
	orientation   Orientation
	givenScore    float64
	familyScore   float64
	profileGiven  string
	profileFamily string
}

func (o orientationScore) aggregate() float64 {
	return (o.givenScore + o.familyScore) / 2
}

// Match compares a document's printed given/family name against a free-form
// profile display name using DefaultPolicy. It never fails: any input,
// including empty strings, yields a well-formed result.
func Match(documentGiven, documentFamily, profileDisplayName string) Result {
	return MatchWithPolicy(documentGiven, documentFamily, profileDisplayName, DefaultPolicy)
}

// MatchWithPolicy is Match with caller-supplied thresholds.
func MatchWithPolicy(documentGiven, documentFamily, profileDisplayName string, policy Policy) Result {
	profile := Parse(profileDisplayName)

	natural := orientationScore{
		orientation:   OrientationNatural,
		givenScore:    Similarity(documentGiven, profile.Given),
		familyScore:   Similarity(documentFamily, profile.Family),
		profileGiven:  profile.Given,
		profileFamily: profile.Family,
	}
	swapped := orientationScore{
		orientation:   OrientationSwapped,
		givenScore:    Similarity(documentGiven, profile.Family),
		familyScore:   Similarity(documentFamily, profile.Given),
		profileGiven:  profile.Family,
		profileFamily: profile.Given,
	}

	// Natural orientation wins ties.
	best := natural
	if swapped.aggregate() > natural.aggregate() {
		best = swapped
	}

	result := Result{
		Score:       best.aggregate(),
		Orientation: best.orientation,
		Given: FieldMatch{
			DocumentValue: documentGiven,
			ProfileValue:  best.profileGiven,
			Matched:       best.givenScore >= policy.ComponentThreshold,
			Score:         best.givenScore,
		},
		Family: FieldMatch{
			DocumentValue: documentFamily,
			ProfileValue:  best.profileFamily,
			Matched:       best.familyScore >= policy.ComponentThreshold,
			Score:         best.familyScore,
		},
	}
	result.Passed = result.Score >= policy.OverallThreshold &&
		(result.Given.Matched || result.Family.Matched)

	return result
}
