package extract

import (
	"regexp"

	"github.com/seasalt-intel/webintel/internal/domain"
)

// marketplaceSignature detects whether a site also sells through a
// third-party platform, either via an outbound link or a textual mention.
type marketplaceSignature struct {
	platform string
	link     *regexp.Regexp
	mention  *regexp.Regexp
	// capture pulls the full marketplace listing URL when present.
	capture *regexp.Regexp
}

var marketplaceSignatures = []marketplaceSignature{
	{
		platform: "amazon",
		link:     regexp.MustCompile(`(?i)amazon\.(?:in|com)`),
		mention:  mentionPattern(`amazon`),
		capture:  regexp.MustCompile(`(?i)https?://(?:www\.)?amazon\.in/[^\s"'<>]+`),
	},
	{
		platform: "flipkart",
		link:     regexp.MustCompile(`(?i)flipkart\.com`),
		mention:  mentionPattern(`flipkart`),
		capture:  regexp.MustCompile(`(?i)https?://(?:www\.)?flipkart\.com/[^\s"'<>]+`),
	},
	{
		platform: "swiggy",
		link:     regexp.MustCompile(`(?i)swiggy\.com`),
		mention:  mentionPattern(`swiggy`),
		capture:  regexp.MustCompile(`(?i)https?://(?:www\.)?swiggy\.com/[^\s"'<>]+`),
	},
	{
		platform: "zomato",
		link:     regexp.MustCompile(`(?i)zomato\.com`),
		mention:  mentionPattern(`zomato`),
	},
	{
		platform: "bigbasket",
		link:     regexp.MustCompile(`(?i)bigbasket\.com`),
		mention:  mentionPattern(`bigbasket`),
	},
	{
		platform: "jiomart",
		link:     regexp.MustCompile(`(?i)jiomart\.com`),
		mention:  mentionPattern(`jiomart`),
	},
	{
		platform: "blinkit",
		link:     regexp.MustCompile(`(?i)blinkit\.com`),
		mention:  mentionPattern(`blinkit`),
	},
	{
		platform: "instagram_shop",
		link:     regexp.MustCompile(`(?i)instagram\.com/[^\s"'<>]*/shop`),
		mention:  mentionPattern(`instagram`),
	},
	{
		platform: "whatsapp",
		link:     regexp.MustCompile(`(?i)wa\.me/|api\.whatsapp\.com`),
		mention:  mentionPattern(`whatsapp`),
	},
}

// mentionPattern matches natural-language availability claims like
// "available on amazon" or "order from flipkart".
func mentionPattern(platform string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)(?:available|buy|order|shop|find us)[^<]{0,80}?(?:on|at|from)[^<]{0,40}?` + platform)
}

// Marketplace detects third-party selling channels referenced on the page.
// A page with no marketplace signals yields all-false platforms and a zero
// count.
func Marketplace(html string) domain.MarketplacePresence {
	presence := domain.MarketplacePresence{
		Platforms: make(map[string]bool, len(marketplaceSignatures)),
		URLs:      make(map[string]string),
	}

	for _, sig := range marketplaceSignatures {
		found := sig.link.MatchString(html) || sig.mention.MatchString(html)
		presence.Platforms[sig.platform] = found
		if !found {
			continue
		}
		presence.PlatformCount++
		if sig.capture != nil {
			if url := sig.capture.FindString(html); url != "" {
				presence.URLs[sig.platform] = url
			}
		}
	}

	return presence
}
