package extract

import "regexp"

// techSignature maps a vendor name to the markup fingerprint that betrays it.
type techSignature struct {
	name    string
	pattern *regexp.Regexp
}

// Detection table, ordered platform > payments > analytics > misc so the
// resulting stack list reads naturally.
var techSignatures = []techSignature{
	{"Shopify", regexp.MustCompile(`(?i)cdn\.shopify|myshopify\.com|shopify`)},
	{"WordPress", regexp.MustCompile(`(?i)wp-content|wp-includes|wordpress`)},
	{"Squarespace", regexp.MustCompile(`(?i)squarespace`)},
	{"Wix", regexp.MustCompile(`(?i)wixstatic|wix\.com`)},
	{"Webflow", regexp.MustCompile(`(?i)webflow`)},
	{"React/Next.js", regexp.MustCompile(`(?i)/_next/|__next|data-reactroot`)},
	{"Razorpay", regexp.MustCompile(`(?i)razorpay`)},
	{"Stripe", regexp.MustCompile(`(?i)js\.stripe\.com|stripe\.com`)},
	{"Instamojo", regexp.MustCompile(`(?i)instamojo`)},
	{"Paytm", regexp.MustCompile(`(?i)paytm`)},
	{"PhonePe", regexp.MustCompile(`(?i)phonepe`)},
	{"Cashfree", regexp.MustCompile(`(?i)cashfree`)},
	{"Google Tag Manager", regexp.MustCompile(`(?i)googletagmanager\.com`)},
	{"Google Analytics", regexp.MustCompile(`(?i)google-analytics\.com|gtag\(`)},
	{"Facebook Pixel", regexp.MustCompile(`(?i)fbevents\.js|fbq\(`)},
	{"Hotjar", regexp.MustCompile(`(?i)hotjar`)},
	{"Microsoft Clarity", regexp.MustCompile(`(?i)clarity\.ms`)},
	{"Tawk.to", regexp.MustCompile(`(?i)tawk\.to`)},
	{"Mailchimp", regexp.MustCompile(`(?i)mailchimp|list-manage\.com`)},
	{"Klaviyo", regexp.MustCompile(`(?i)klaviyo`)},
	{"Shiprocket", regexp.MustCompile(`(?i)shiprocket`)},
	{"Cloudflare", regexp.MustCompile(`(?i)cloudflare`)},
	{"reCAPTCHA", regexp.MustCompile(`(?i)recaptcha`)},
	{"Bootstrap", regexp.MustCompile(`(?i)bootstrap`)},
	{"Tailwind CSS", regexp.MustCompile(`(?i)tailwind`)},
}

// TechStack fingerprints the vendors present in the page markup. Order is
// stable across runs.
func TechStack(html string) []string {
	var stack []string
	for _, sig := range techSignatures {
		if sig.pattern.MatchString(html) {
			stack = append(stack, sig.name)
		}
	}
	return stack
}
