package domain

// Category is a code/label pair an activity can be filed under.
// Value is the stable code stored on activities; Label is the display text.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// categories is the closed set of activity categories, in display order.
// It is never mutated after package initialisation.
var categories = [...]Category{
	{Value: "life", Label: "生活"},
	{Value: "spirit", Label: "心靈"},
	{Value: "sports", Label: "運動"},
	{Value: "entertainment", Label: "娛樂"},
	{Value: "education", Label: "教育"},
	{Value: "medical", Label: "醫療"},
	{Value: "environment", Label: "環保"},
	{Value: "electronics", Label: "電子"},
	{Value: "social-welfare", Label: "社福"},
}

var categoryIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		idx[c.Value] = struct{}{}
	}
	return idx
}()

// ListCategories returns every registered category in its fixed display order.
// The returned slice is a fresh copy; callers may modify it freely.
func ListCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// IsValidCategory reports whether code may be stored as an activity category.
// An empty code means "no category" and is always valid. Otherwise the match
// is exact and case-sensitive.
func IsValidCategory(code string) bool {
	if code == "" {
		return true
	}
	_, ok := categoryIndex[code]
	return ok
}

// CategoryLabel returns the display label for code, or "" when code is not registered.
func CategoryLabel(code string) string {
	for _, c := range categories {
		if c.Value == code {
			return c.Label
		}
	}
	return ""
}
