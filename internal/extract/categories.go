package extract

import (
	"regexp"
	"strings"
)

const maxCategories = 30

var categoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/(?:product-category|category|collections?)/([a-zA-Z0-9-]+)`),
	regexp.MustCompile(`(?i)class=["'][^"']*cat(?:egory)?[-_]?(?:name|title|link|item)[^"']*["'][^>]*>([^<]+)<`),
}

// Slugs that appear in category URLs but carry no catalog signal.
var junkCategories = map[string]bool{
	"all": true, "home": true, "about": true, "contact": true,
	"blog": true, "faq": true, "page": true, "cart": true,
	"account": true, "login": true, "search": true, "collections": true,
	"products": true, "shop": true, "new": true, "sale": true,
	"featured": true, "frontpage": true, "index": true,
}

// Categories extracts product category names from URLs and class-tagged
// elements, deduplicated case-insensitively and capped.
func Categories(html string) []string {
	var categories []string
	seen := make(map[string]bool)

	for _, pattern := range categoryPatterns {
		for _, m := range pattern.FindAllStringSubmatch(html, -1) {
			name := CleanText(strings.ReplaceAll(m[1], "-", " "))
			key := strings.ToLower(name)
			if len(name) <= 2 || len(name) >= 50 || junkCategories[key] || seen[key] {
				continue
			}
			seen[key] = true
			categories = append(categories, name)
			if len(categories) >= maxCategories {
				return categories
			}
		}
	}

	return categories
}
