package classifiers

import "strings"

// rule maps a case-folded user agent to a label. match reports whether the
// rule applies; label is only consulted when match returned true.
type rule struct {
	name  string
	match func(ua string) bool
	label func(ua string) string
}

// rules is evaluated top to bottom and the first match wins. A user agent
// frequently carries several vendor tokens (crawlers embed "Chrome/",
// Edge embeds "Chrome/" and "Safari/"), so the order is the classification.
var rules = []rule{
	{name: "bot", match: containsAny("bot", "crawler", "spider", "scraper"), label: firstOf(botVendors, LabelOtherBot)},
	{name: "client", match: anyOf(clientTools), label: firstOf(clientTools, "")},
	{name: "desktop", match: anyOf(desktopBrowsers), label: firstOf(desktopBrowsers, "")},
	{name: "mobile", match: containsAll("mobile"), label: firstOf(mobileBrowsers, LabelMobileBrowser)},
}

// signature is a (predicate, label) pair inside a rule's sub-table.
type signature struct {
	match func(ua string) bool
	label func(ua string) string
}

func is(label string) func(string) string {
	return func(string) string { return label }
}

var botVendors = []signature{
	{containsAll("googlebot"), is(LabelGooglebot)},
	{containsAll("ahrefsbot"), is(LabelAhrefsBot)},
	{containsAll("bingbot"), is(LabelBingBot)},
	{containsAll("gptbot"), is(LabelGPTBot)},
	{containsAll("bytespider"), is(LabelByteSpider)},
	{containsAll("prerender"), is(LabelPrerenderBot)},
	{containsAll("headlesschrome"), is(LabelHeadlessChrome)},
	{containsAll("applebot"), is(LabelApplebot)},
	{containsAny("facebookexternalhit", "facebookbot"), is(LabelFacebookBot)},
}

var clientTools = []signature{
	{containsAll("go-http-client"), is(LabelGoHTTPClient)},
	{containsAll("curl"), is(LabelCURL)},
	{containsAll("nginx-ssl early hints"), is(LabelNginxEarlyHints)},
	{containsAll("fasthttp"), is(LabelFastHTTP)},
	{containsAll("ktor"), is(LabelKtorClient)},
	{containsAll("python", "aiohttp"), is(LabelPythonAiohttp)},
	{containsAll("restsharp"), is(LabelRestSharp)},
	{containsAll("imgproxy"), is(LabelImgProxy)},
}

var desktopBrowsers = []signature{
	{containsAny("edg/", "edge/"), is(LabelEdge)},
	{containsAll("chrome/", "safari/"), chromiumFamily},
	{containsAll("firefox/"), is(LabelFirefox)},
	{func(ua string) bool {
		return strings.Contains(ua, "safari/") && !strings.Contains(ua, "chrome/")
	}, is(LabelSafari)},
	{containsAny("msie", "trident"), is(LabelInternetExplorer)},
}

var mobileBrowsers = []signature{
	{containsAll("chrome"), is(LabelChromeMobile)},
	{containsAll("safari"), is(LabelSafariMobile)},
	{containsAll("firefox"), is(LabelFirefoxMobile)},
}

// chromiumFamily tells Chromium-based browsers apart from Chrome itself.
func chromiumFamily(ua string) string {
	switch {
	case containsAny("opr/", "opera")(ua):
		return LabelOpera
	case strings.Contains(ua, "vivaldi"):
		return LabelVivaldi
	default:
		return LabelChrome
	}
}

// Classify maps a raw User-Agent header to a client category.
// It is total: every input yields exactly one label from Labels().
func Classify(userAgent string) string {
	label, _ := ClassifyWithRule(userAgent)
	return label
}

// ClassifyWithRule is Classify that also names the rule that decided the label
// ("empty", "bot", "client", "desktop", "mobile" or "fallback").
func ClassifyWithRule(userAgent string) (string, string) {
	trimmed := strings.TrimSpace(userAgent)
	if trimmed == "" || trimmed == LabelUnknown {
		return LabelUnknown, "empty"
	}

	ua := strings.ToLower(trimmed)
	for _, r := range rules {
		if r.match(ua) {
			return r.label(ua), r.name
		}
	}
	return LabelUncharted, "fallback"
}

func containsAny(needles ...string) func(string) bool {
	return func(ua string) bool {
		for _, n := range needles {
			if strings.Contains(ua, n) {
				return true
			}
		}
		return false
	}
}

func containsAll(needles ...string) func(string) bool {
	return func(ua string) bool {
		for _, n := range needles {
			if !strings.Contains(ua, n) {
				return false
			}
		}
		return true
	}
}

func anyOf(table []signature) func(string) bool {
	return func(ua string) bool {
		for _, s := range table {
			if s.match(ua) {
				return true
			}
		}
		return false
	}
}

// firstOf returns the label of the first matching signature, or fallback.
func firstOf(table []signature, fallback string) func(string) string {
	return func(ua string) string {
		for _, s := range table {
			if s.match(ua) {
				return s.label(ua)
			}
		}
		return fallback
	}
}
