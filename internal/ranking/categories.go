package ranking

// UnrankedCategory groups players whose category is missing or not one of
// the known classes.
const UnrankedCategory = "unranked"

// DefaultCategories is the club's class order, best class first.
var DefaultCategories = Categories{"4ª Classe", "5ª Classe", "6ª Classe"}

// Categories is a fixed class order, best class first.
type Categories []string

// Index returns the position of category in the order. Missing and unknown
// categories sort after every known class.
func (c Categories) Index(category *string) int {
	if category == nil {
		return len(c)
	}
	for i, known := range c {
		if known == *category {
			return i
		}
	}
	return len(c)
}

// Label returns the category label used for grouping, or UnrankedCategory.
func (c Categories) Label(category *string) string {
	if i := c.Index(category); i < len(c) {
		return c[i]
	}
	return UnrankedCategory
}

// Known reports whether category is one of the known classes.
func (c Categories) Known(category string) bool {
	return c.Index(&category) < len(c)
}
