package mu

// MediaItem is a node of the browse tree as seen by a client.
type MediaItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	MediaType  string `json:"mediaType"`
	Browsable  bool   `json:"browsable"`
	Playable   bool   `json:"playable"`
	Count      int    `json:"count,omitempty"`
	ArtworkURL string `json:"artworkUrl,omitempty"`
	StreamURL  string `json:"streamUrl,omitempty"`
	DurationMS int64  `json:"durationMs,omitempty"`
}

// BrowseChildrenBody is the payload for browse.getChildren. Page and
// PageSize are accepted for client compatibility; local lists are returned
// whole and remote lists are bounded by the search limit.
type BrowseChildrenBody struct {
	ID       string `json:"id"`
	Page     int64  `json:"page,omitempty"`
	PageSize int64  `json:"pageSize,omitempty"`
}

// BrowseItemBody is the payload for browse.getItem.
type BrowseItemBody struct {
	ID string `json:"id"`
}

// BrowseSearchBody is the payload for browse.search and browse.getSearchResult.
type BrowseSearchBody struct {
	Query    string `json:"query"`
	Page     int64  `json:"page,omitempty"`
	PageSize int64  `json:"pageSize,omitempty"`
}

// BrowseItemReply carries a single node.
type BrowseItemReply struct {
	Item MediaItem `json:"item"`
}

// BrowseItemsReply carries a node list.
type BrowseItemsReply struct {
	Items []MediaItem `json:"items"`
}

// QueueSetItemsBody is the payload for queue.set.
type QueueSetItemsBody struct {
	Items           []MediaItem `json:"items"`
	StartIndex      int64       `json:"startIndex"`
	StartPositionMS int64       `json:"startPositionMs"`
}

// QueueAddItemsBody is the payload for queue.addItems.
type QueueAddItemsBody struct {
	Items []MediaItem `json:"items"`
}

// QueueReply is returned by queue.set and queue.resume.
type QueueReply struct {
	Items           []MediaItem `json:"items"`
	StartIndex      int64       `json:"startIndex"`
	StartPositionMS int64       `json:"startPositionMs"`
}

// SessionCommandBody is the payload for session.command.
type SessionCommandBody struct {
	Name string `json:"name"`
}

// SessionCommandReply reports whether a hook handled the command.
type SessionCommandReply struct {
	Handled bool `json:"handled"`
}

// SearchResultChangedBody is the body of browse.searchResultChanged.
type SearchResultChangedBody struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// CommandEventBody is the body of command.<name> events.
type CommandEventBody struct {
	Name string `json:"name"`
}
