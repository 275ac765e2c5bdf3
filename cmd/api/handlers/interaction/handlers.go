package handlers

type ToggleLikeParam struct {
	VideoId   int64 `path:"videoId"`
	CommentId int64 `path:"commentId"`
	TweetId   int64 `path:"tweetId"`
}

type LikeListParam struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}
