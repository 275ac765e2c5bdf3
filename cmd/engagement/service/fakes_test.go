package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

type edgeKey struct {
	actor  int64
	target model.Target
}

// memStore 内存实现的全部存储端口，唯一约束与数据库一致
type memStore struct {
	mu        sync.Mutex
	nextId    int64
	clock     time.Time
	users     map[int64]*model.User
	videos    map[int64]*model.Video
	comments  map[int64]*model.Comment
	tweets    map[int64]*model.Tweet
	playlists map[int64]*model.Playlist
	members   map[int64][]int64
	histories map[int64][]int64
	edges     map[edgeKey]*model.Edge

	// 故障注入
	failStep     map[string]error
	beforeCreate func()
	beforeDelete func()
	onConflict   func()
}

func newMemStore() *memStore {
	return &memStore{
		nextId:    1000,
		clock:     time.Unix(1700000000, 0),
		users:     map[int64]*model.User{},
		videos:    map[int64]*model.Video{},
		comments:  map[int64]*model.Comment{},
		tweets:    map[int64]*model.Tweet{},
		playlists: map[int64]*model.Playlist{},
		members:   map[int64][]int64{},
		histories: map[int64][]int64{},
		edges:     map[edgeKey]*model.Edge{},
		failStep:  map[string]error{},
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) addUser(id int64, name string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{UserId: id, UserName: name, AvatarUrl: "http://img/" + name}
	m.users[id] = u
	return u
}

func (m *memStore) addVideo(id, owner int64, title string, views int64, published bool) *model.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &model.Video{
		VideoId:     id,
		UserId:      owner,
		Title:       title,
		VideoUrl:    "http://oss/video/video/" + title + ".mp4",
		CoverUrl:    "http://oss/picture/image/" + title + ".png",
		Views:       views,
		IsPublished: published,
		CreatedAt:   m.tick(),
	}
	m.videos[id] = v
	return v
}

func (m *memStore) addComment(id, videoId, userId int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[id] = &model.Comment{CommentId: id, VideoId: videoId, UserId: userId}
}

func (m *memStore) addPlaylist(id, owner int64, videoIds ...int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playlists[id] = &model.Playlist{PlaylistId: id, UserId: owner, Name: "list"}
	m.members[id] = append([]int64{}, videoIds...)
}

func (m *memStore) edgeCount(kind model.EdgeKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.edges {
		if k.target.Kind == kind {
			n++
		}
	}
	return n
}

func copyVideo(v *model.Video) *model.Video {
	c := *v
	return &c
}

// EdgeStore

func (m *memStore) FindEdge(_ context.Context, actorId int64, target model.Target) (*model.Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.edges[edgeKey{actorId, target}]; ok {
		c := *e
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) CreateEdge(_ context.Context, actorId int64, target model.Target) (*model.Edge, error) {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}
	m.mu.Lock()
	key := edgeKey{actorId, target}
	if _, ok := m.edges[key]; ok {
		m.mu.Unlock()
		if m.onConflict != nil {
			m.onConflict()
		}
		return nil, errno.ConflictErr.WithMessage("edge already exists")
	}
	defer m.mu.Unlock()
	m.nextId++
	e := &model.Edge{Id: m.nextId, ActorId: actorId, Kind: target.Kind, TargetId: target.Id, CreatedAt: m.tick()}
	m.edges[key] = e
	c := *e
	return &c, nil
}

func (m *memStore) DeleteEdge(_ context.Context, kind model.EdgeKind, edgeId int64) error {
	if m.beforeDelete != nil {
		m.beforeDelete()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.edges {
		if e.Id == edgeId && e.Kind == kind {
			delete(m.edges, k)
			return nil
		}
	}
	return errno.NotFoundErr.WithMessage("edge not found")
}

func (m *memStore) CountEdges(_ context.Context, target model.Target) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.edges {
		if k.target == target {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountEdgesByTargets(_ context.Context, kind model.EdgeKind, targetIds []int64) (map[int64]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := map[int64]int64{}
	for _, id := range targetIds {
		for k := range m.edges {
			if k.target == (model.Target{Kind: kind, Id: id}) {
				res[id]++
			}
		}
	}
	return res, nil
}

func (m *memStore) sortedEdges(match func(edgeKey) bool) []*model.Edge {
	list := make([]*model.Edge, 0)
	for k, e := range m.edges {
		if match(k) {
			c := *e
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

func pageEdges(list []*model.Edge, offset, limit int) []*model.Edge {
	if limit <= 0 {
		return list
	}
	if offset >= len(list) {
		return []*model.Edge{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func (m *memStore) ListEdgesByActor(_ context.Context, actorId int64, kind model.EdgeKind, offset, limit int) ([]*model.Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return pageEdges(m.sortedEdges(func(k edgeKey) bool { return k.actor == actorId && k.target.Kind == kind }), offset, limit), nil
}

func (m *memStore) ListEdgesByTarget(_ context.Context, target model.Target, offset, limit int) ([]*model.Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return pageEdges(m.sortedEdges(func(k edgeKey) bool { return k.target == target }), offset, limit), nil
}

func (m *memStore) ActorEdgeSet(_ context.Context, actorId int64, kind model.EdgeKind, targetIds []int64) (map[int64]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := map[int64]bool{}
	for _, id := range targetIds {
		if _, ok := m.edges[edgeKey{actorId, model.Target{Kind: kind, Id: id}}]; ok {
			res[id] = true
		}
	}
	return res, nil
}

func (m *memStore) DeleteEdgesByTargets(_ context.Context, kind model.EdgeKind, targetIds []int64) (int64, error) {
	if err := m.failStep[string(kind)]; err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range targetIds {
		for k := range m.edges {
			if k.target == (model.Target{Kind: kind, Id: id}) {
				delete(m.edges, k)
				n++
			}
		}
	}
	return n, nil
}

func (m *memStore) CountVideoLikesByOwner(_ context.Context, ownerId int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.edges {
		if k.target.Kind != model.EdgeVideoLike {
			continue
		}
		if v, ok := m.videos[k.target.Id]; ok && v.UserId == ownerId {
			n++
		}
	}
	return n, nil
}

// TargetResolver

func (m *memStore) Exists(_ context.Context, target model.Target) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	switch target.Kind {
	case model.EdgeVideoLike:
		_, ok = m.videos[target.Id]
	case model.EdgeCommentLike:
		_, ok = m.comments[target.Id]
	case model.EdgeTweetLike:
		_, ok = m.tweets[target.Id]
	case model.EdgeSubscription:
		_, ok = m.users[target.Id]
	}
	return ok, nil
}

// UserRepository

func (m *memStore) FindUser(_ context.Context, userId int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userId]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) FindUsers(_ context.Context, userIds []int64) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.User, 0)
	for _, id := range userIds {
		if u, ok := m.users[id]; ok {
			c := *u
			list = append(list, &c)
		}
	}
	return list, nil
}

func (m *memStore) AppendWatchHistory(_ context.Context, userId, videoId int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.histories[userId] {
		if id == videoId {
			return nil
		}
	}
	m.histories[userId] = append(m.histories[userId], videoId)
	return nil
}

func (m *memStore) WatchHistory(_ context.Context, userId int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64{}, m.histories[userId]...), nil
}

func (m *memStore) RemoveVideoFromWatchHistories(_ context.Context, videoId int64) (int64, error) {
	if err := m.failStep[StepPruneHistories]; err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for user, ids := range m.histories {
		kept := ids[:0]
		for _, id := range ids {
			if id == videoId {
				n++
				continue
			}
			kept = append(kept, id)
		}
		m.histories[user] = kept
	}
	return n, nil
}

// VideoRepository

func (m *memStore) FindVideo(_ context.Context, videoId int64) (*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.videos[videoId]; ok {
		return copyVideo(v), nil
	}
	return nil, nil
}

func (m *memStore) FindVideos(_ context.Context, videoIds []int64) ([]*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.Video, 0)
	for _, id := range videoIds {
		if v, ok := m.videos[id]; ok {
			list = append(list, copyVideo(v))
		}
	}
	return list, nil
}

func (m *memStore) CreateVideo(_ context.Context, video *model.Video) error {
	if err := m.failStep["create_video"]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videos[video.VideoId] = copyVideo(video)
	return nil
}

func (m *memStore) DeleteVideo(_ context.Context, videoId int64) (bool, error) {
	if err := m.failStep[StepDeleteVideo]; err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[videoId]; !ok {
		return false, nil
	}
	delete(m.videos, videoId)
	return true, nil
}

func (m *memStore) IncrViews(_ context.Context, videoId, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[videoId]
	if !ok {
		return errno.NotFoundErr.WithMessage("video not found")
	}
	v.Views += delta
	return nil
}

func (m *memStore) CountVideosByOwner(_ context.Context, ownerId int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, v := range m.videos {
		if v.UserId == ownerId {
			n++
		}
	}
	return n, nil
}

func (m *memStore) SumViewsByOwner(_ context.Context, ownerId int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, v := range m.videos {
		if v.UserId == ownerId {
			n += v.Views
		}
	}
	return n, nil
}

func (m *memStore) LatestPublishedByOwner(_ context.Context, ownerId int64) (*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.Video
	for _, v := range m.videos {
		if v.UserId != ownerId || !v.IsPublished {
			continue
		}
		if latest == nil || v.CreatedAt.After(latest.CreatedAt) {
			latest = v
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyVideo(latest), nil
}

func (m *memStore) ListVideosByOwner(_ context.Context, ownerId int64) ([]*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.Video, 0)
	for _, v := range m.videos {
		if v.UserId == ownerId {
			list = append(list, copyVideo(v))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *memStore) SearchVideos(_ context.Context, q *model.VideoQuery) ([]*model.Video, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kw := strings.ToLower(strings.TrimSpace(q.Keyword))
	list := make([]*model.Video, 0)
	for _, v := range m.videos {
		if !v.IsPublished || (q.OwnerId != 0 && v.UserId != q.OwnerId) {
			continue
		}
		if kw != "" && !strings.Contains(strings.ToLower(v.Title), kw) && !strings.Contains(strings.ToLower(v.Description), kw) {
			continue
		}
		list = append(list, copyVideo(v))
	}
	less := func(a, b *model.Video) bool {
		switch model.VideoSortColumns[q.SortBy] {
		case "views":
			return a.Views < b.Views
		case "title":
			return a.Title < b.Title
		case "duration":
			return a.Duration < b.Duration
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if q.SortDesc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
	total := int64(len(list))
	if q.Offset >= len(list) {
		return []*model.Video{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[q.Offset:end], total, nil
}

// CommentRepository

func (m *memStore) CommentIdsByVideo(_ context.Context, videoId int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0)
	for id, c := range m.comments {
		if c.VideoId == videoId {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memStore) DeleteCommentsByVideo(_ context.Context, videoId int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, c := range m.comments {
		if c.VideoId == videoId {
			delete(m.comments, id)
			n++
		}
	}
	return n, nil
}

// PlaylistRepository

func (m *memStore) FindPlaylist(_ context.Context, playlistId int64) (*model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.playlists[playlistId]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) ListPlaylistsByOwner(_ context.Context, ownerId int64) ([]*model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.Playlist, 0)
	for _, p := range m.playlists {
		if p.UserId == ownerId {
			c := *p
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PlaylistId < list[j].PlaylistId })
	return list, nil
}

func (m *memStore) PlaylistVideoIds(_ context.Context, playlistId int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64{}, m.members[playlistId]...), nil
}

func (m *memStore) AddVideo(_ context.Context, playlistId, videoId int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.members[playlistId] {
		if id == videoId {
			return false, nil
		}
	}
	m.members[playlistId] = append(m.members[playlistId], videoId)
	return true, nil
}

func (m *memStore) RemoveVideo(_ context.Context, playlistId, videoId int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.members[playlistId]
	for i, id := range ids {
		if id == videoId {
			m.members[playlistId] = append(ids[:i:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) RemoveVideoFromPlaylists(_ context.Context, videoId int64) (int64, error) {
	if err := m.failStep[StepPrunePlaylists]; err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for pid, ids := range m.members {
		kept := make([]int64, 0, len(ids))
		for _, id := range ids {
			if id == videoId {
				n++
				continue
			}
			kept = append(kept, id)
		}
		m.members[pid] = kept
	}
	return n, nil
}

// fakeBlobs 记录上传与回收的对象存储
type fakeBlobs struct {
	mu         sync.Mutex
	uploaded   []string
	released   []string
	failUpload map[oss.ResourceKind]error
	failRemove error
}

func (b *fakeBlobs) Upload(_ context.Context, localFile string, kind oss.ResourceKind) (*oss.UploadResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failUpload[kind]; err != nil {
		return nil, err
	}
	url := "http://oss/" + string(kind) + "/" + localFile
	b.uploaded = append(b.uploaded, url)
	res := &oss.UploadResult{URL: url}
	if kind == oss.ResourceVideo {
		d := 12.5
		res.Duration = &d
	}
	return res, nil
}

func (b *fakeBlobs) Release(_ context.Context, objectURL string, _ oss.ResourceKind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failRemove != nil {
		return b.failRemove
	}
	b.released = append(b.released, objectURL)
	return nil
}

// fakeProducer 收集投递的事件
type fakeProducer struct {
	mu         sync.Mutex
	engagement []*mq.EngagementEvent
	deleted    []*mq.VideoDeletedEvent
	fail       error
}

func (p *fakeProducer) PublishEngagementEvent(_ context.Context, event *mq.EngagementEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.engagement = append(p.engagement, event)
	return nil
}

func (p *fakeProducer) PublishVideoDeletedEvent(_ context.Context, event *mq.VideoDeletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.deleted = append(p.deleted, event)
	return nil
}

type fakeLocker struct {
	err      error
	locked   []int64
	released int
}

func (l *fakeLocker) Lock(_ context.Context, videoId int64) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, videoId)
	return func() { l.released++ }, nil
}

var errStorageDown = errors.New("storage unavailable")

type fixture struct {
	store    *memStore
	blobs    *fakeBlobs
	producer *fakeProducer
	locker   *fakeLocker
	svc      *EngagementService
}

func newFixture() *fixture {
	f := &fixture{
		store:    newMemStore(),
		blobs:    &fakeBlobs{failUpload: map[oss.ResourceKind]error{}},
		producer: &fakeProducer{},
		locker:   &fakeLocker{},
	}
	f.svc = NewEngagementService(Dependencies{
		Edges:     f.store,
		Targets:   f.store,
		Users:     f.store,
		Videos:    f.store,
		Comments:  f.store,
		Playlists: f.store,
		Blobs:     f.blobs,
		Locker:    f.locker,
		Producer:  f.producer,
	})
	f.svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return f
}
