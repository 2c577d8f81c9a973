package advisory

import (
	"testing"

	"github.com/arnv-dev/go-aqi-alerts/internal/models"
)

func TestCategoryForAQI_Partition(t *testing.T) {
	expected := func(aqi int) models.Category {
		switch {
		case aqi <= 50:
			return models.CategoryGood
		case aqi <= 100:
			return models.CategoryFair
		case aqi <= 150:
			return models.CategoryModerate
		case aqi <= 200:
			return models.CategoryPoor
		case aqi <= 300:
			return models.CategoryVeryPoor
		default:
			return models.CategoryHazardous
		}
	}

	// Every value in [0, 500] lands in exactly one bucket; advisory output
	// always agrees with the table.
	for aqi := 0; aqi <= 500; aqi++ {
		want := expected(aqi)
		got := models.CategoryForAQI(aqi)
		if got != want {
			t.Fatalf("aqi %d: expected category %s, got %s", aqi, want, got)
		}
		if adv := Advise(aqi, nil); adv.Category != want {
			t.Fatalf("aqi %d: Advise category %s disagrees with table %s", aqi, adv.Category, want)
		}
	}
}

func TestCategoryForAQI_Boundaries(t *testing.T) {
	tests := []struct {
		aqi  int
		want models.Category
	}{
		{50, models.CategoryGood},
		{51, models.CategoryFair},
		{100, models.CategoryFair},
		{101, models.CategoryModerate},
		{150, models.CategoryModerate},
		{151, models.CategoryPoor},
		{200, models.CategoryPoor},
		{201, models.CategoryVeryPoor},
		{300, models.CategoryVeryPoor},
		{301, models.CategoryHazardous},
	}

	for _, tt := range tests {
		if got := models.CategoryForAQI(tt.aqi); got != tt.want {
			t.Errorf("aqi %d: expected %s, got %s", tt.aqi, tt.want, got)
		}
	}
}

func TestAdvise_Flags(t *testing.T) {
	if Advise(100, nil).ShouldUseAirPurifier {
		t.Error("purifier flag should be off at aqi 100")
	}
	if !Advise(101, nil).ShouldUseAirPurifier {
		t.Error("purifier flag should be on at aqi 101")
	}
	if Advise(150, nil).ShouldCloseWindows {
		t.Error("windows flag should be off at aqi 150")
	}
	if !Advise(151, nil).ShouldCloseWindows {
		t.Error("windows flag should be on at aqi 151")
	}
}

func TestAdvise_PollutantAdvice(t *testing.T) {
	adv := Advise(120, map[string]float64{
		models.PollutantPM25: 40,  // above 35
		models.PollutantNO2:  90,  // below 100
		models.PollutantSO2:  80,  // above 75
		"xyz":                999, // unknown code, ignored
	})

	if _, ok := adv.PollutantAdvice[models.PollutantPM25]; !ok {
		t.Error("expected pm25 advice")
	}
	if _, ok := adv.PollutantAdvice[models.PollutantNO2]; ok {
		t.Error("no2 below threshold should have no advice")
	}
	if _, ok := adv.PollutantAdvice[models.PollutantSO2]; !ok {
		t.Error("expected so2 advice")
	}
	if _, ok := adv.PollutantAdvice["xyz"]; ok {
		t.Error("unknown pollutant code should be ignored")
	}
}

func TestAdvise_ThresholdIsExclusive(t *testing.T) {
	adv := Advise(120, map[string]float64{models.PollutantPM25: 35})
	if len(adv.PollutantAdvice) != 0 {
		t.Errorf("pm25 exactly at threshold should not trigger advice, got %v", adv.PollutantAdvice)
	}
}

func TestAdvise_AllCategoriesHaveContent(t *testing.T) {
	for _, aqi := range []int{10, 75, 125, 175, 250, 400} {
		adv := Advise(aqi, nil)
		if len(adv.GeneralRecommendations) == 0 {
			t.Errorf("aqi %d: missing general recommendations", aqi)
		}
		if len(adv.SensitiveGroupRecommendations) == 0 {
			t.Errorf("aqi %d: missing sensitive group recommendations", aqi)
		}
		if adv.MaskRecommendation == "" {
			t.Errorf("aqi %d: missing mask recommendation", aqi)
		}
		if adv.ExerciseRecommendation == "" {
			t.Errorf("aqi %d: missing exercise recommendation", aqi)
		}
	}
}
