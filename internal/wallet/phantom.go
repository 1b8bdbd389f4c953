package wallet

import "net/url"

const phantomBrowseBase = "https://phantom.app/ul/browse/"

// PhantomDeepLink builds the universal link that opens the given dashboard
// URL inside Phantom's in-app browser, for users on a mobile device
// without a local keystore.
func PhantomDeepLink(target string) string {
	return phantomBrowseBase + url.QueryEscape(target)
}
