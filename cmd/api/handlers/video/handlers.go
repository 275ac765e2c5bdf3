package handlers

type VideoParam struct {
	VideoId int64 `path:"videoId"`
}

type FeedParam struct {
	Query    string `query:"query"`
	UserId   int64  `query:"userId"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type PublishParam struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	IsPublished bool   `form:"isPublished"`
}
