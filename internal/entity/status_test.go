package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardVisual(t *testing.T) {
	cases := []struct {
		score int
		want  Visual
	}{
		{100, VisualHot},
		{80, VisualHot},
		{79, VisualWarm},
		{60, VisualWarm},
		{59, VisualCold},
		{0, VisualCold},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CardVisual(tc.score, DefaultCardThresholds), "score %d", tc.score)
	}
}

func TestPromotionStatus(t *testing.T) {
	cases := []struct {
		score int
		want  Status
	}{
		{95, StatusHot},
		{70, StatusHot},
		{69, StatusWarm},
		{40, StatusWarm},
		{39, StatusCold},
		{0, StatusCold},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, PromotionStatus(tc.score, DefaultPromotionThresholds), "score %d", tc.score)
	}
}

// A score of 75 is hot for promotion but only warm on the card.
func TestThresholdsStayIndependent(t *testing.T) {
	assert.Equal(t, StatusHot, PromotionStatus(75, DefaultPromotionThresholds))
	assert.Equal(t, VisualWarm, CardVisual(75, DefaultCardThresholds))

	custom := Thresholds{Hot: 90, Warm: 50}
	assert.Equal(t, StatusWarm, PromotionStatus(75, custom))
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"hot": StatusHot, "Quente": StatusHot,
		"warm": StatusWarm, " morno ": StatusWarm,
		"cold": StatusCold, "FRIO": StatusCold,
	} {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseStatus("all")
	assert.False(t, ok)
}

func TestDefaultScore(t *testing.T) {
	assert.Equal(t, 85, DefaultScore(StatusHot))
	assert.Equal(t, 60, DefaultScore(StatusWarm))
	assert.Equal(t, 35, DefaultScore(StatusCold))
}
