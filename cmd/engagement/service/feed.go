package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

// FeedQuery 视频流查询参数
type FeedQuery struct {
	Query    string `json:"query"`
	OwnerId  int64  `json:"userId"`
	SortBy   string `json:"sortBy"`
	SortType string `json:"sortType"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

type FeedItem struct {
	Video *model.Video    `json:"video"`
	Owner *model.UserLite `json:"owner"`
}

type FeedPage struct {
	Items []*FeedItem `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func (q *FeedQuery) toVideoQuery() (*model.VideoQuery, Page, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	if _, ok := model.VideoSortColumns[sortBy]; !ok {
		return nil, Page{}, errno.ValidationErr.WithMessage("unsupported sort field: " + sortBy)
	}

	desc := true
	switch strings.ToLower(q.SortType) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return nil, Page{}, errno.ValidationErr.WithMessage("unsupported sort type: " + q.SortType)
	}

	page := Page{Page: q.Page, Limit: q.Limit}.normalize()
	return &model.VideoQuery{
		Keyword:  q.Query,
		OwnerId:  q.OwnerId,
		SortBy:   sortBy,
		SortDesc: desc,
		Offset:   page.offset(),
		Limit:    page.Limit,
	}, page, nil
}

// VideoFeed 已发布视频的检索流
func (s *EngagementService) VideoFeed(ctx context.Context, q *FeedQuery) (*FeedPage, error) {
	if q == nil {
		q = &FeedQuery{}
	}
	vq, page, err := q.toVideoQuery()
	if err != nil {
		return nil, err
	}

	videos, total, err := s.videos.SearchVideos(ctx, vq)
	if err != nil {
		return nil, errors.WithMessage(err, "search videos failed")
	}

	ownerIds := make([]int64, 0, len(videos))
	for _, v := range videos {
		ownerIds = append(ownerIds, v.UserId)
	}
	owners, err := s.usersById(ctx, ownerIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load owners failed")
	}

	items := make([]*FeedItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, &FeedItem{Video: v, Owner: owners[v.UserId].Lite()})
	}
	return &FeedPage{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}
