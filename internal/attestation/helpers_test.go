package attestation_test

import (
	"time"

	"idverify/internal/namematch"
	"idverify/internal/verification"
)

func fullResultForTest() verification.Result {
	return verification.Result{
		NameMatch: namematch.Result{
			Score:       1.0,
			Passed:      true,
			Orientation: namematch.OrientationNatural,
			Given:       namematch.FieldMatch{DocumentValue: "JOHN", ProfileValue: "John", Matched: true, Score: 1.0},
			Family:      namematch.FieldMatch{DocumentValue: "SMITH", ProfileValue: "Smith", Matched: true, Score: 1.0},
		},
		Timestamp:      time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		DocumentType:   "passport",
		IssuingCountry: "USA",
	}
}
