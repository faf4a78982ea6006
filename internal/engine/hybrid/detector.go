// Package hybrid decides whether a statically fetched page needs browser rendering.
package hybrid

import (
	"github.com/PuerkitoBio/goquery"
)

// Framework markers, checked in order
var frameworks = []struct {
	name     string
	selector string
}{
	{"Next.js", "#__next, script#__NEXT_DATA__"},
	{"React", "[data-reactroot], #root:empty"},
	{"Nuxt", "#__nuxt, #__layout"},
	{"Vue", "[data-v-app], [data-server-rendered]"},
	{"Angular", "[ng-app], [ng-version], app-root"},
	{"Svelte", "[class*='svelte-']"},
	{"Ember", ".ember-application"},
}

// DetectFramework returns the name of the client-side framework that
// renders doc, or "" when none is recognised.
func DetectFramework(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	for _, f := range frameworks {
		if doc.Find(f.selector).Length() > 0 {
			return f.name
		}
	}
	return ""
}

// NeedsRender reports whether doc likely only gets its content from
// scripts, along with the detected framework if any.
func NeedsRender(doc *goquery.Document) (bool, string) {
	if doc == nil {
		return false, ""
	}

	framework := DetectFramework(doc)
	if framework != "" {
		return true, framework
	}

	// Script-heavy page with almost no text containers
	scripts := doc.Find("script").Length()
	blocks := doc.Find("body p, body div, body article").Length()
	if scripts > 5 && blocks < 3 {
		return true, ""
	}
	if scripts > 0 && doc.Find("body p").Length() == 0 && blocks < 3 {
		return true, ""
	}
	return false, ""
}
