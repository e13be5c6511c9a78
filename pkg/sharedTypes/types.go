package sharedTypes

// ContentItem identifies one position of the infinite feed. The ID is derived
// from the global index that produced the item; Locator points at the media
// the engine should play. Two items are "the same content" when their
// locators are equal - that equality is what makes slot reloads skippable.
type ContentItem struct {
	ID      string `json:"id"`
	Locator string `json:"locator"`
}

// FeedSource describes where the one-shot manifest comes from.
type FeedSource struct {
	Manifest string `json:"manifest"` // http(s) URL, s3://bucket/key, or local path
	Title    string `json:"title,omitempty"`
}
