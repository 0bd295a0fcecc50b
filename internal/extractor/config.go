package extractor

// ignoredSelector lists elements whose content never counts as visible text.
const ignoredSelector = "script, style, noscript, template"

// blockElements start a new line in the extracted text. Inline elements are
// joined with their neighbours as they render.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "title": true,
	"tr": true, "ul": true, "option": true,
}
