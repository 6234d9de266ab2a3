// internal/pipeline/route-intent/config.go
package routeintent

// Per-location base names for the mock place generator. Locations without
// their own table fall back to the generic one.
var mockNameTables = map[string][]string{
	"강남역": {"강남회관", "역삼골목집", "테헤란식당", "강남별미", "수라강남"},
	"홍대":  {"홍대주방", "연트럴키친", "홍익식탁", "와우산맛집", "동교동밥상"},
	"신촌":  {"신촌옛날집", "연세식당", "신촌화로", "창천골목", "신촌미가"},
}

var mockGenericNames = []string{"서울식당", "한입주방", "골목맛집", "정든식탁", "미소식당"}

// Cuisine categories derived from extracted keywords; the first hit wins.
var mockCategories = []struct {
	Keyword  string
	Category string
}{
	{"중식", "중식당"},
	{"한식", "한식당"},
	{"일식", "일식당"},
	{"양식", "양식당"},
	{"카페", "카페"},
}

// Synthetic reviews attached to every mock record.
var mockReviews = []struct {
	Author string
	Text   string
	Rating int
}{
	{"김민수", "분위기도 좋고 음식도 맛있어요.", 5},
	{"이서연", "직원분들이 친절하고 재방문 의사 있습니다.", 4},
	{"박지훈", "가성비 좋아요. 웨이팅이 조금 있습니다.", 5},
}

const (
	mockRating       = 4.5
	mockOpeningHours = "매일 11:00 - 22:00"
	mockNearbyMin    = 3
	mockNearbySpread = 3 // nearby count is min + rand(spread), so 3 to 5
)
