package domain

// Category is the communication channel mix a customer opted into.
type Category string

// Communication categories. Every flag pair maps to exactly one.
const (
	CategoryTextOnly     Category = "Text Only"
	CategoryEmailOnly    Category = "Email Only"
	CategoryEmailAndText Category = "Email & Text"
	CategoryNoComms      Category = "No Comms"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryTextOnly, CategoryEmailOnly, CategoryEmailAndText, CategoryNoComms}
}

// OptInCategories returns the categories that count as an opt-in.
func OptInCategories() []Category {
	return []Category{CategoryTextOnly, CategoryEmailOnly, CategoryEmailAndText}
}

// Classify maps the text and email flags onto a category.
func Classify(text, email bool) Category {
	switch {
	case text && email:
		return CategoryEmailAndText
	case text:
		return CategoryTextOnly
	case email:
		return CategoryEmailOnly
	default:
		return CategoryNoComms
	}
}

// IsOptIn reports whether the category represents at least one channel.
func (c Category) IsOptIn() bool {
	return c != CategoryNoComms
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTextOnly, CategoryEmailOnly, CategoryEmailAndText, CategoryNoComms:
		return true
	default:
		return false
	}
}

// String returns the display label.
func (c Category) String() string {
	return string(c)
}
