package dal

import (
	"videotube.com/cmd/engagement/dal/db"
)

// Repositories 引擎使用的全部存储
type Repositories struct {
	Edges     *db.EdgeDB
	Targets   *db.TargetDB
	Users     *db.UserDB
	Videos    *db.VideoDB
	Comments  *db.CommentDB
	Playlists *db.PlaylistDB
}

func Init() *Repositories {
	db.Init()
	return &Repositories{
		Edges:     db.NewEdgeDB(db.DB),
		Targets:   db.NewTargetDB(db.DB),
		Users:     db.NewUserDB(db.DB),
		Videos:    db.NewVideoDB(db.DB),
		Comments:  db.NewCommentDB(db.DB),
		Playlists: db.NewPlaylistDB(db.DB),
	}
}
