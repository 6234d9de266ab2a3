// internal/pipeline/extract-entities/config.go
package extractentities

import appconfig "eum-chatbot/internal/common/config"

// Config holds the pattern tables driving extraction. The tables are
// immutable after construction; tests substitute smaller fixtures.
type Config struct {
	Landmarks         []string
	LocationSuffixes  []string
	FoodKeywords      []string
	QualifierKeywords []string
}

var defaultLandmarks = []string{
	"강남역", "홍대", "신촌", "이태원", "명동", "종로", "건대입구",
	"잠실", "여의도", "서울역", "압구정", "성수동", "을지로", "삼청동",
}

var defaultLocationSuffixes = []string{
	"역", "구", "동", "가", "로", "길", "대로", "시", "군",
}

var defaultFoodKeywords = []string{
	"맛집", "카페", "중식", "한식", "일식", "양식", "분식",
	"치킨", "피자", "고기", "회", "디저트", "빵집", "술집", "브런치",
}

var defaultQualifierKeywords = []string{
	"추천", "근처", "주변", "가까운", "유명한", "인기", "저렴한", "싼", "분위기",
}

// LoadConfig builds the extraction tables, letting non-empty application
// config entries override the built-in defaults.
func LoadConfig(cfg *appconfig.Config) *Config {
	c := &Config{
		Landmarks:         defaultLandmarks,
		LocationSuffixes:  defaultLocationSuffixes,
		FoodKeywords:      defaultFoodKeywords,
		QualifierKeywords: defaultQualifierKeywords,
	}

	if cfg != nil {
		if len(cfg.Extract.Landmarks) > 0 {
			c.Landmarks = cfg.Extract.Landmarks
		}
		if len(cfg.Extract.LocationSuffixes) > 0 {
			c.LocationSuffixes = cfg.Extract.LocationSuffixes
		}
		if len(cfg.Extract.FoodKeywords) > 0 {
			c.FoodKeywords = cfg.Extract.FoodKeywords
		}
		if len(cfg.Extract.QualifierKeywords) > 0 {
			c.QualifierKeywords = cfg.Extract.QualifierKeywords
		}
	}

	return c
}
