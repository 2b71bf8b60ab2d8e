package services

import (
	"math"
	"testing"
	"time"
)

func TestSimilarityScore(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b duplicateCandidate
		want float64
	}{
		{
			name: "identical entries score 1",
			a:    newDuplicateCandidate(15050, day, "Mercado Central"),
			b:    newDuplicateCandidate(15050, day, "Mercado Central"),
			want: 1.0,
		},
		{
			name: "different amount loses the amount weight",
			a:    newDuplicateCandidate(15050, day, "Mercado Central"),
			b:    newDuplicateCandidate(20000, day, "Mercado Central"),
			want: 0.6,
		},
		{
			name: "one day apart decays the date component",
			a:    newDuplicateCandidate(15050, day, "Mercado Central"),
			b:    newDuplicateCandidate(15050, day.AddDate(0, 0, 1), "Mercado Central"),
			want: 0.9, // date proximity 2/3 of 0.3
		},
		{
			name: "outside the window the date component is zero",
			a:    newDuplicateCandidate(15050, day, "Mercado Central"),
			b:    newDuplicateCandidate(15050, day.AddDate(0, 0, 5), "Mercado Central"),
			want: 0.7,
		},
		{
			name: "disjoint descriptions lose the description weight",
			a:    newDuplicateCandidate(15050, day, "Mercado Central"),
			b:    newDuplicateCandidate(15050, day, "Posto Shell"),
			want: 0.7,
		},
		{
			name: "partial token overlap scores proportionally",
			a:    newDuplicateCandidate(15050, day, "Mercado Central"),
			b:    newDuplicateCandidate(15050, day, "Mercado do Bairro"),
			// Jaccard of {mercado central} and {mercado do bairro} is 1/4.
			want: 0.775,
		},
		{
			name: "nothing in common scores 0",
			a:    newDuplicateCandidate(15050, day, "Mercado Central"),
			b:    newDuplicateCandidate(99999, day.AddDate(0, 0, 10), "Posto Shell"),
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := similarityScore(tt.a, tt.b, 3)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected score %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSimilarityScoreIsSymmetric(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	a := newDuplicateCandidate(15050, day, "Mercado Central")
	b := newDuplicateCandidate(15050, day.AddDate(0, 0, 2), "Mercado do Bairro")

	if ab, ba := similarityScore(a, b, 3), similarityScore(b, a, 3); ab != ba {
		t.Errorf("expected symmetric scores, got %v and %v", ab, ba)
	}
}

func TestDescriptionTokens(t *testing.T) {
	tokens := descriptionTokens("Pagamento, (Uber) - a viagem!")
	want := []string{"pagamento", "uber", "viagem"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), tokens)
	}
	for _, token := range want {
		if !tokens[token] {
			t.Errorf("expected token %q in %v", token, tokens)
		}
	}
}

func TestDateProximity(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	if got := dateProximity(day, day, 3); got != 1 {
		t.Errorf("expected 1 for the same day, got %v", got)
	}
	if got := dateProximity(day, day.AddDate(0, 0, 3), 3); got != 0 {
		t.Errorf("expected 0 at the window boundary, got %v", got)
	}
	closer := dateProximity(day, day.AddDate(0, 0, 1), 3)
	farther := dateProximity(day, day.AddDate(0, 0, 2), 3)
	if closer <= farther {
		t.Errorf("expected monotonic falloff, got %v then %v", closer, farther)
	}
}
