package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMeta holds the head metadata and coarse page signals extracted from
// a single document.
type PageMeta struct {
	Title           string
	H1              string
	MetaDescription string
	OGImage         string

	HasCanonical  bool
	HasViewport   bool
	HasRobotsMeta bool

	HasEcommerce bool
	HasBlog      bool
	HasWhatsApp  bool

	WordCount     int
	ImageCount    int
	InternalLinks int
	ExternalLinks int

	SocialLinks map[string]string
}

var (
	ecommercePattern = regexp.MustCompile(`(?i)add.to.cart|buy.now|add-to-cart|addtocart|shopify|woocommerce|checkout|purchase`)
	blogPattern      = regexp.MustCompile(`(?i)/blog|/articles|/news|/recipes`)
	whatsappPattern  = regexp.MustCompile(`(?i)wa\.me|whatsapp|api\.whatsapp`)

	imgTagPattern       = regexp.MustCompile(`(?i)<img`)
	internalLinkPattern = regexp.MustCompile(`href=["']/`)
	externalLinkPattern = regexp.MustCompile(`href=["']https?:`)
)

var socialPatterns = map[string]*regexp.Regexp{
	"instagram": regexp.MustCompile(`(?i)https?://(?:www\.)?instagram\.com/[A-Za-z0-9_.]+`),
	"facebook":  regexp.MustCompile(`(?i)https?://(?:www\.)?facebook\.com/[A-Za-z0-9_.]+`),
	"youtube":   regexp.MustCompile(`(?i)https?://(?:www\.)?youtube\.com/[^\s"'<>]+`),
	"twitter":   regexp.MustCompile(`(?i)https?://(?:www\.)?(?:twitter|x)\.com/[A-Za-z0-9_]+`),
	"whatsapp":  regexp.MustCompile(`(?i)https?://(?:wa\.me|api\.whatsapp\.com)/[^\s"'<>]+`),
	"linkedin":  regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/[^\s"'<>]+`),
}

// Meta extracts head metadata, page flags, and counters. The raw HTML is
// passed alongside the parsed document because the counters are defined
// over markup, not rendered text.
func Meta(doc *goquery.Document, html string) PageMeta {
	meta := PageMeta{
		Title:       CleanText(doc.Find("title").First().Text()),
		H1:          CleanText(doc.Find("h1").First().Text()),
		SocialLinks: make(map[string]string),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		meta.MetaDescription = CleanText(desc)
	} else if desc, ok := doc.Find(`meta[property="description"]`).Attr("content"); ok {
		meta.MetaDescription = CleanText(desc)
	}
	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		meta.OGImage = strings.TrimSpace(img)
	}

	meta.HasCanonical = doc.Find(`link[rel="canonical"]`).Length() > 0
	meta.HasViewport = doc.Find(`meta[name="viewport"]`).Length() > 0
	meta.HasRobotsMeta = doc.Find(`meta[name="robots"]`).Length() > 0

	meta.HasEcommerce = ecommercePattern.MatchString(html)
	meta.HasBlog = blogPattern.MatchString(html)
	meta.HasWhatsApp = whatsappPattern.MatchString(html)

	meta.WordCount = countWords(doc.Text())
	meta.ImageCount = len(imgTagPattern.FindAllStringIndex(html, -1))
	meta.InternalLinks = len(internalLinkPattern.FindAllStringIndex(html, -1))
	meta.ExternalLinks = len(externalLinkPattern.FindAllStringIndex(html, -1))

	for platform, pattern := range socialPatterns {
		if link := pattern.FindString(html); link != "" {
			meta.SocialLinks[platform] = link
		}
	}

	return meta
}

// countWords counts words longer than two characters in the visible text.
func countWords(text string) int {
	count := 0
	for _, word := range strings.Fields(text) {
		if len(word) > 2 {
			count++
		}
	}
	return count
}
