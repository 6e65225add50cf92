package failure

// DisplayError is one entry of the user-visible error list.
type DisplayError struct {
	Title       string
	Description string
	Type        string
	Kind        Kind
}

// Errors is the ordered error list held in screen state, most recent first.
// Values are never modified in place; every operation returns a new slice.
type Errors []DisplayError

// Has reports whether an entry with the title exists.
func (es Errors) Has(title string) bool {
	return es.index(title) >= 0
}

// Get returns the entry with the title.
func (es Errors) Get(title string) (DisplayError, bool) {
	if i := es.index(title); i >= 0 {
		return es[i], true
	}
	return DisplayError{}, false
}

// Titles lists the entry titles in order.
func (es Errors) Titles() []string {
	titles := make([]string, len(es))
	for i, e := range es {
		titles[i] = e.Title
	}
	return titles
}

// Descriptions lists the entry descriptions in order.
func (es Errors) Descriptions() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Description
	}
	return out
}

// Prepend inserts d at the front unless an entry with the same title exists.
func (es Errors) Prepend(d DisplayError) Errors {
	if es.Has(d.Title) {
		return es
	}
	out := make(Errors, 0, len(es)+1)
	out = append(out, d)
	return append(out, es...)
}

// Replace removes any entry titled d.Title and inserts d at the front.
func (es Errors) Replace(d DisplayError) Errors {
	return es.Without(d.Title).Prepend(d)
}

// Without removes every entry whose title is one of titles.
func (es Errors) Without(titles ...string) Errors {
	drop := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		drop[t] = struct{}{}
	}

	out := make(Errors, 0, len(es))
	for _, e := range es {
		if _, ok := drop[e.Title]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (es Errors) index(title string) int {
	for i, e := range es {
		if e.Title == title {
			return i
		}
	}
	return -1
}
