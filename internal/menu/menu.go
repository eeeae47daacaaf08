package menu

// Course is one dish on the daily menu. Titles and properties default to
// "NA" when the provider omits them; Category stays empty unless set.
type Course struct {
	TitleFi    string
	TitleEn    string
	Properties string
	Category   string
}

// Menu is the ordered course list for one day. May be empty when the
// restaurant publishes no menu.
type Menu []Course

// CategoryDessert gets a distinct rendering prefix.
const CategoryDessert = "Dessert"
