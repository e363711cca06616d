package views

// Page shell links. The listing lives in index.html and single posts in
// post.html?p=<file>.
const (
	IndexPage = "index.html"
	PostPage  = "post.html"
)

// Labels holds the user-facing strings of the generated markup.
type Labels struct {
	AllTags      string // "all" tag button
	BackToList   string
	ErrorIcon    string
	DateIcon     string
	CategoryIcon string
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		AllTags:      "All",
		BackToList:   "← Back to the list",
		ErrorIcon:    "⚠️",
		DateIcon:     "📅",
		CategoryIcon: "📁",
	}
}
