package entity

// Source tells which data set a FeedResult carries.
type Source string

const (
	SourceProvider Source = "instagram"
	SourceFallback Source = "placeholder"
)

const (
	MessageNoCredential  = "Using placeholder data. Set INSTAGRAM_ACCESS_TOKEN to fetch real posts."
	MessageProviderEmpty = "Instagram API returned no posts. Using placeholder data."
	MessageProviderError = "Error fetching from Instagram. Using placeholder data."
	MessageSuccess       = "Successfully fetched from Instagram API."
)

// FeedResult is the envelope returned for every feed request
type FeedResult struct {
	Posts   []Post `json:"posts"`
	Source  Source `json:"source"`
	Message string `json:"message"`
}

// Head returns a copy of the result holding at most n posts.
// A non-positive n keeps all of them.
func (r FeedResult) Head(n int) FeedResult {
	if n <= 0 || n >= len(r.Posts) {
		return r
	}

	posts := make([]Post, n)
	copy(posts, r.Posts[:n])
	r.Posts = posts

	return r
}
