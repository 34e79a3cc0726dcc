package classifiers

// Category labels emitted by Classify.
const (
	LabelUnknown   = "Unknown"
	LabelUncharted = "Uncharted"

	LabelGooglebot      = "Googlebot"
	LabelAhrefsBot      = "AhrefsBot"
	LabelBingBot        = "BingBot"
	LabelGPTBot         = "GPTBot"
	LabelByteSpider     = "ByteSpider"
	LabelPrerenderBot   = "Prerender Bot"
	LabelHeadlessChrome = "Headless Chrome"
	LabelApplebot       = "Applebot"
	LabelFacebookBot    = "Facebook Bot"
	LabelOtherBot       = "Other Bot"

	LabelGoHTTPClient    = "Go HTTP Client"
	LabelCURL            = "cURL"
	LabelNginxEarlyHints = "Nginx Early Hints"
	LabelFastHTTP        = "FastHTTP"
	LabelKtorClient      = "Ktor Client"
	LabelPythonAiohttp   = "Python aiohttp"
	LabelRestSharp       = "RestSharp"
	LabelImgProxy        = "ImgProxy"

	LabelEdge             = "Microsoft Edge"
	LabelOpera            = "Opera"
	LabelVivaldi          = "Vivaldi"
	LabelChrome           = "Chrome"
	LabelFirefox          = "Firefox"
	LabelSafari           = "Safari"
	LabelInternetExplorer = "Internet Explorer"

	LabelChromeMobile  = "Chrome Mobile"
	LabelSafariMobile  = "Safari Mobile"
	LabelFirefoxMobile = "Firefox Mobile"
	LabelMobileBrowser = "Mobile Browser"
)

// Labels returns every label Classify can return.
func Labels() []string {
	return []string{
		LabelUnknown, LabelUncharted,
		LabelGooglebot, LabelAhrefsBot, LabelBingBot, LabelGPTBot, LabelByteSpider,
		LabelPrerenderBot, LabelHeadlessChrome, LabelApplebot, LabelFacebookBot, LabelOtherBot,
		LabelGoHTTPClient, LabelCURL, LabelNginxEarlyHints, LabelFastHTTP, LabelKtorClient,
		LabelPythonAiohttp, LabelRestSharp, LabelImgProxy,
		LabelEdge, LabelOpera, LabelVivaldi, LabelChrome, LabelFirefox, LabelSafari, LabelInternetExplorer,
		LabelChromeMobile, LabelSafariMobile, LabelFirefoxMobile, LabelMobileBrowser,
	}
}
