package docnav

// Labels used when presenting navigation.
const (
	DefaultPreviousTitle = "Previous Page"
	DefaultNextTitle     = "Next Page"

	PreviousTopTitle = "Previous"
	NextTopTitle     = "Next"

	ContinueLearningTitle       = "Continue Learning"
	ContinueLearningDescription = "Continue with the next part or go back to the previous page"
)

// NavigationLink is a link card pointing at a neighboring page.
type NavigationLink struct {
	TopTitle    string `json:"topTitle"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Href        string `json:"href"`
}

// Pagination is what a page renders around its content: a link back to the
// previous page above the content and a "Continue Learning" section below.
type Pagination struct {
	Show             bool             `json:"show"`
	Previous         *NavigationLink  `json:"previous,omitempty"`
	ContinueLearning []NavigationLink `json:"continueLearning,omitempty"`
}

// BuildPagination turns a navigation answer into links. Nothing is shown
// when the route is a main route, whatever its neighbors.
func BuildPagination(nav *Navigation) Pagination {
	if nav == nil || !nav.ShowNavigation {
		return Pagination{}
	}

	p := Pagination{Show: true}
	if prev := nav.Result.Previous; prev != nil {
		link := newLink(PreviousTopTitle, prev, DefaultPreviousTitle)
		p.Previous = &link
		p.ContinueLearning = append(p.ContinueLearning, link)
	}
	if next := nav.Result.Next; next != nil {
		p.ContinueLearning = append(p.ContinueLearning, newLink(NextTopTitle, next, DefaultNextTitle))
	}
	return p
}

func newLink(topTitle string, e *FlatEntry, fallback string) NavigationLink {
	title := e.Title
	if title == "" {
		title = fallback
	}
	return NavigationLink{
		TopTitle:    topTitle,
		Title:       title,
		Description: e.Description,
		Href:        e.Route,
	}
}
