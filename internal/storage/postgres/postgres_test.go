package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pribylovaa/go-videohub/internal/models"
	"github.com/pribylovaa/go-videohub/internal/pagination"
	"github.com/pribylovaa/go-videohub/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты для пакета postgres:
// - поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// - применяют миграции из ./migrations;
// - проверяют ленты (порядок, продолжение по курсору, агрегаты, обогащение зрителя)
//   и мутации (переключатели реакций и плейлистов, подписки, ответы на комментарии).

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres поднимает PostgreSQL, применяет миграции и возвращает хранилище.
// Без GO_TEST_INTEGRATION тест пропускается.
func startPostgres(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, readMigration(t, "1_init_videohub.up.sql"))
	pool.Close()
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		st.Close()
		_ = c.Terminate(context.Background())
	})

	return st
}

func idN(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012x", n))
}

func seedUser(t *testing.T, st *Storage, id uuid.UUID, name string) {
	t.Helper()
	_, err := st.db.Exec(context.Background(), `INSERT INTO users (id, name) VALUES ($1, $2)`, id, name)
	require.NoError(t, err)
}

func seedVideo(t *testing.T, st *Storage, id, owner uuid.UUID, title string, vis models.Visibility, updatedAt time.Time) {
	t.Helper()
	_, err := st.db.Exec(context.Background(), `
	INSERT INTO videos (id, user_id, title, visibility, thumbnail_url, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $6)`, id, owner, title, string(vis), "thumb-"+title, updatedAt)
	require.NoError(t, err)
}

// seedViews добавляет n просмотров видео от n новых пользователей.
func seedViews(t *testing.T, st *Storage, videoID uuid.UUID, n int) {
	t.Helper()
	_, err := st.db.Exec(context.Background(), `
	WITH viewers AS (
		INSERT INTO users (id, name)
		SELECT gen_random_uuid(), 'viewer-' || g FROM generate_series(1, $2::int) g
		RETURNING id
	)
	INSERT INTO video_views (user_id, video_id) SELECT id, $1 FROM viewers`, videoID, n)
	require.NoError(t, err)
}

// collect проходит ленту до конца через сборщик страниц и возвращает все элементы.
func collectVideos(t *testing.T, st *Storage, q storage.FeedQuery, limit int, keyOf pagination.KeyFunc[models.Video], kind pagination.SortKind) [][]models.Video {
	t.Helper()
	ctx := context.Background()

	var pages [][]models.Video
	for i := 0; i < 100; i++ {
		page, err := pagination.Fetch(ctx, limit, func(ctx context.Context, n int) ([]models.Video, error) {
			q.Limit = n
			return st.ListVideos(ctx, q)
		}, keyOf)
		require.NoError(t, err)
		pages = append(pages, page.Items)

		if !page.HasMore {
			return pages
		}

		after, err := pagination.Decode(page.NextCursor, kind)
		require.NoError(t, err)
		q.After = &after
	}

	t.Fatal("feed did not terminate")
	return nil
}

func titles(items []models.Video) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		out = append(out, v.Title)
	}
	return out
}

func TestIntegration_Trending_CountCursor(t *testing.T) {
	st := startPostgres(t)

	owner := idN(1000)
	seedUser(t, st, owner, "owner")
	now := time.Now().UTC()

	a, b, c := idN(0xa), idN(0xb), idN(0xc)
	seedVideo(t, st, a, owner, "a", models.VisibilityPublic, now)
	seedVideo(t, st, b, owner, "b", models.VisibilityPublic, now)
	seedVideo(t, st, c, owner, "c", models.VisibilityPublic, now)
	seedVideo(t, st, idN(0xd), owner, "hidden", models.VisibilityPrivate, now)
	seedViews(t, st, a, 50)
	seedViews(t, st, b, 50)
	seedViews(t, st, c, 10)

	keyOf := func(v models.Video) pagination.Key { return pagination.CountKey(v.ViewCount, v.ID) }
	q := storage.FeedQuery{Feed: models.FeedTrending}

	page, err := pagination.Fetch(context.Background(), 2, func(ctx context.Context, n int) ([]models.Video, error) {
		q.Limit = n
		return st.ListVideos(ctx, q)
	}, keyOf)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, titles(page.Items))
	require.True(t, page.HasMore)

	after, err := pagination.Decode(page.NextCursor, pagination.SortCount)
	require.NoError(t, err)
	require.Equal(t, int64(50), after.Count)
	require.Equal(t, a, after.ID)

	q.After = &after
	page, err = pagination.Fetch(context.Background(), 2, func(ctx context.Context, n int) ([]models.Video, error) {
		q.Limit = n
		return st.ListVideos(ctx, q)
	}, keyOf)
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, titles(page.Items))
	require.False(t, page.HasMore)
	require.Empty(t, page.NextCursor)
}

func TestIntegration_Videos_FullTraversal_WithTies(t *testing.T) {
	st := startPostgres(t)

	owner := idN(2000)
	seedUser(t, st, owner, "owner")

	// Две группы с одинаковым updated_at: порядок внутри группы решает id.
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	for i := 1; i <= 7; i++ {
		ts := t1
		if i%2 == 0 {
			ts = t2
		}
		seedVideo(t, st, idN(i), owner, fmt.Sprintf("v%d", i), models.VisibilityPublic, ts)
	}

	keyOf := func(v models.Video) pagination.Key { return pagination.TimeKey(v.UpdatedAt, v.ID) }
	pages := collectVideos(t, st, storage.FeedQuery{Feed: models.FeedVideos}, 3, keyOf, pagination.SortTime)

	var got []string
	for _, p := range pages {
		got = append(got, titles(p)...)
	}
	require.Equal(t, []string{"v6", "v4", "v2", "v7", "v5", "v3", "v1"}, got)
	require.Len(t, pages, 3)
}

func TestIntegration_Comments_RepliesAndCounts(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	owner, viewer := idN(3000), idN(3001)
	seedUser(t, st, owner, "owner")
	seedUser(t, st, viewer, "viewer")
	video := idN(3100)
	seedVideo(t, st, video, owner, "video", models.VisibilityPublic, time.Now())

	x, err := st.CreateComment(ctx, models.NewComment{VideoID: video, UserID: owner, Value: "x"})
	require.NoError(t, err)
	y, err := st.CreateComment(ctx, models.NewComment{VideoID: video, UserID: owner, Value: "y"})
	require.NoError(t, err)

	var replies []uuid.UUID
	for i := 0; i < 3; i++ {
		r, err := st.CreateComment(ctx, models.NewComment{ParentID: &x.ID, UserID: viewer, Value: fmt.Sprintf("r%d", i)})
		require.NoError(t, err)
		require.Equal(t, video, r.VideoID, "reply inherits parent's video")
		replies = append(replies, r.ID)
	}

	// Ответ на ответ запрещён, несуществующий родитель - NotFound.
	_, err = st.CreateComment(ctx, models.NewComment{ParentID: &replies[0], UserID: viewer, Value: "nested"})
	require.ErrorIs(t, err, storage.ErrNestedReply)
	missing := uuid.New()
	_, err = st.CreateComment(ctx, models.NewComment{ParentID: &missing, UserID: viewer, Value: "orphan"})
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.ToggleCommentReaction(ctx, viewer, x.ID, models.ReactionLike)
	require.NoError(t, err)

	items, err := st.ListComments(ctx, storage.FeedQuery{
		Feed: models.FeedComments, Filter: models.FeedFilter{VideoID: &video}, Limit: 10, Viewer: viewer,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[uuid.UUID]models.Comment{}
	for _, c := range items {
		require.Nil(t, c.ParentID, "replies must not leak into root feed")
		byID[c.ID] = c
	}
	require.Equal(t, int64(3), byID[x.ID].ReplyCount)
	require.Equal(t, int64(0), byID[y.ID].ReplyCount)
	require.Equal(t, int64(1), byID[x.ID].LikeCount)
	require.NotNil(t, byID[x.ID].ViewerReaction)
	require.Equal(t, models.ReactionLike, *byID[x.ID].ViewerReaction)
	require.Nil(t, byID[y.ID].ViewerReaction)

	rs, err := st.ListComments(ctx, storage.FeedQuery{
		Feed: models.FeedReplies, Filter: models.FeedFilter{ParentID: &x.ID}, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, rs, 3)
	for i := 1; i < len(rs); i++ {
		prev := pagination.TimeKey(rs[i-1].CreatedAt, rs[i-1].ID)
		cur := pagination.TimeKey(rs[i].CreatedAt, rs[i].ID)
		require.Equal(t, 1, prev.Compare(cur), "replies are ordered newest first")
	}

	require.ErrorIs(t, st.RemoveComment(ctx, x.ID, viewer), storage.ErrNotFound)
	require.NoError(t, st.RemoveComment(ctx, x.ID, owner))
	_, err = st.CommentByID(ctx, replies[0], uuid.Nil)
	require.ErrorIs(t, err, storage.ErrNotFound, "replies are removed with the parent")
}

func TestIntegration_VideoReactionToggle(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	owner := idN(4000)
	seedUser(t, st, owner, "owner")
	video := idN(4100)
	seedVideo(t, st, video, owner, "video", models.VisibilityPublic, time.Now())

	res, err := st.ToggleVideoReaction(ctx, owner, video, models.ReactionLike)
	require.NoError(t, err)
	require.Equal(t, models.ReactionLike, *res)

	res, err = st.ToggleVideoReaction(ctx, owner, video, models.ReactionDislike)
	require.NoError(t, err)
	require.Equal(t, models.ReactionDislike, *res)

	v, err := st.VideoByID(ctx, video, owner)
	require.NoError(t, err)
	require.Equal(t, int64(0), v.LikeCount)
	require.Equal(t, int64(1), v.DislikeCount)
	require.Equal(t, models.ReactionDislike, *v.ViewerReaction)

	res, err = st.ToggleVideoReaction(ctx, owner, video, models.ReactionDislike)
	require.NoError(t, err)
	require.Nil(t, res)

	_, err = st.ToggleVideoReaction(ctx, owner, uuid.New(), models.ReactionLike)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Subscriptions(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	viewer, creator, other := idN(5000), idN(5001), idN(5002)
	seedUser(t, st, viewer, "viewer")
	seedUser(t, st, creator, "creator")
	seedUser(t, st, other, "other")
	now := time.Now()
	seedVideo(t, st, idN(5100), creator, "from-creator", models.VisibilityPublic, now)
	seedVideo(t, st, idN(5101), other, "from-other", models.VisibilityPublic, now)

	require.ErrorIs(t, st.Subscribe(ctx, viewer, viewer), storage.ErrSelfSubscription)
	require.NoError(t, st.Subscribe(ctx, viewer, creator))
	require.ErrorIs(t, st.Subscribe(ctx, viewer, creator), storage.ErrConflict)
	require.ErrorIs(t, st.Subscribe(ctx, viewer, uuid.New()), storage.ErrNotFound)

	items, err := st.ListVideos(ctx, storage.FeedQuery{Feed: models.FeedSubscriptions, Viewer: viewer, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"from-creator"}, titles(items))
	require.True(t, items[0].Author.ViewerSubscribed)
	require.Equal(t, int64(1), items[0].Author.SubscriberCount)

	require.NoError(t, st.Unsubscribe(ctx, viewer, creator))
	require.ErrorIs(t, st.Unsubscribe(ctx, viewer, creator), storage.ErrNotFound)
}

func TestIntegration_Playlists(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	owner, stranger := idN(6000), idN(6001)
	seedUser(t, st, owner, "owner")
	seedUser(t, st, stranger, "stranger")
	v1, v2 := idN(6100), idN(6101)
	seedVideo(t, st, v1, owner, "one", models.VisibilityPublic, time.Now())
	seedVideo(t, st, v2, owner, "two", models.VisibilityPublic, time.Now())

	p, err := st.CreatePlaylist(ctx, models.NewPlaylist{UserID: owner, Name: "fav"})
	require.NoError(t, err)

	added, err := st.TogglePlaylistVideo(ctx, p.ID, owner, v1)
	require.NoError(t, err)
	require.True(t, added)
	added, err = st.TogglePlaylistVideo(ctx, p.ID, owner, v2)
	require.NoError(t, err)
	require.True(t, added)

	// Приватное видео, добавленное последним, не становится обложкой.
	draft := idN(6102)
	seedVideo(t, st, draft, owner, "draft", models.VisibilityPrivate, time.Now())
	added, err = st.TogglePlaylistVideo(ctx, p.ID, owner, draft)
	require.NoError(t, err)
	require.True(t, added)

	_, err = st.TogglePlaylistVideo(ctx, p.ID, stranger, v1)
	require.ErrorIs(t, err, storage.ErrNotFound)

	lists, err := st.ListPlaylists(ctx, storage.FeedQuery{
		Feed: models.FeedPlaylists, Viewer: owner, Limit: 10, Filter: models.FeedFilter{VideoID: &v1},
	})
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Equal(t, int64(3), lists[0].VideoCount)
	require.Equal(t, "thumb-two", lists[0].ThumbnailURL)
	require.NotNil(t, lists[0].ContainsVideo)
	require.True(t, *lists[0].ContainsVideo)

	videos, err := st.ListVideos(ctx, storage.FeedQuery{
		Feed: models.FeedPlaylistVideos, Viewer: owner, Limit: 10, Filter: models.FeedFilter{PlaylistID: &p.ID},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"two", "one"}, titles(videos))
	require.NotNil(t, videos[0].AddedAt)

	added, err = st.TogglePlaylistVideo(ctx, p.ID, owner, v1)
	require.NoError(t, err)
	require.False(t, added)

	require.ErrorIs(t, st.RemovePlaylist(ctx, p.ID, stranger), storage.ErrNotFound)
	require.NoError(t, st.RemovePlaylist(ctx, p.ID, owner))
}

func TestIntegration_History_ReviewMovesToTop(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	viewer := idN(7000)
	seedUser(t, st, viewer, "viewer")
	v1, v2 := idN(7100), idN(7101)
	seedVideo(t, st, v1, viewer, "one", models.VisibilityPublic, time.Now())
	seedVideo(t, st, v2, viewer, "two", models.VisibilityPublic, time.Now())

	require.NoError(t, st.RecordView(ctx, viewer, v1))
	require.NoError(t, st.RecordView(ctx, viewer, v2))
	require.NoError(t, st.RecordView(ctx, viewer, v1))

	items, err := st.ListVideos(ctx, storage.FeedQuery{Feed: models.FeedHistory, Viewer: viewer, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, titles(items))
	require.NotNil(t, items[0].ViewedAt)
	require.Equal(t, int64(1), items[0].ViewCount)
}

func TestIntegration_Search_EscapesPattern(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	owner := idN(8000)
	seedUser(t, st, owner, "owner")
	seedVideo(t, st, idN(8100), owner, "100% go", models.VisibilityPublic, time.Now())
	seedVideo(t, st, idN(8101), owner, "1000 gophers", models.VisibilityPublic, time.Now())

	items, err := st.ListVideos(ctx, storage.FeedQuery{
		Feed: models.FeedSearch, Filter: models.FeedFilter{Query: "100%"}, Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"100% go"}, titles(items))
}

func TestIntegration_Studio_IncludesPrivate(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	owner, other := idN(9000), idN(9001)
	seedUser(t, st, owner, "owner")
	seedUser(t, st, other, "other")
	seedVideo(t, st, idN(9100), owner, "draft", models.VisibilityPrivate, time.Now())
	seedVideo(t, st, idN(9101), other, "foreign", models.VisibilityPublic, time.Now())

	items, err := st.ListVideos(ctx, storage.FeedQuery{Feed: models.FeedStudio, Viewer: owner, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"draft"}, titles(items))

	_, err = st.ListVideos(ctx, storage.FeedQuery{Feed: models.FeedComments, Limit: 10})
	require.ErrorIs(t, err, storage.ErrUnsupportedFeed)
}

func TestIntegration_UpdateVideo_MovesFeedAndVisibility(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	owner, stranger := idN(10000), idN(10001)
	seedUser(t, st, owner, "owner")
	seedUser(t, st, stranger, "stranger")

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	draft, first, second := idN(10100), idN(10101), idN(10102)
	seedVideo(t, st, draft, owner, "draft", models.VisibilityPrivate, old)
	seedVideo(t, st, first, owner, "first", models.VisibilityPublic, old.Add(time.Hour))
	seedVideo(t, st, second, owner, "second", models.VisibilityPublic, old.Add(2*time.Hour))

	var cat uuid.UUID
	require.NoError(t, st.db.QueryRow(ctx, `INSERT INTO categories (name) VALUES ('Music') RETURNING id`).Scan(&cat))

	title := "published"
	public := models.VisibilityPublic
	v, err := st.UpdateVideo(ctx, models.VideoUpdate{
		ID: draft, UserID: owner, Title: &title, Visibility: &public, CategoryID: &cat,
	})
	require.NoError(t, err)
	require.Equal(t, "published", v.Title)
	require.Equal(t, models.VisibilityPublic, v.Visibility)
	require.Equal(t, cat, *v.CategoryID)
	require.True(t, v.UpdatedAt.After(old.Add(2*time.Hour)))

	items, err := st.ListVideos(ctx, storage.FeedQuery{Feed: models.FeedVideos, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"published", "second", "first"}, titles(items))

	// Поля без значения не меняются.
	private := models.VisibilityPrivate
	v, err = st.UpdateVideo(ctx, models.VideoUpdate{ID: second, UserID: owner, Visibility: &private})
	require.NoError(t, err)
	require.Equal(t, "second", v.Title)

	items, err = st.ListVideos(ctx, storage.FeedQuery{Feed: models.FeedVideos, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"published", "first"}, titles(items))

	_, err = st.UpdateVideo(ctx, models.VideoUpdate{ID: first, UserID: stranger, Title: &title})
	require.ErrorIs(t, err, storage.ErrNotFound)

	unknown := idN(10999)
	_, err = st.UpdateVideo(ctx, models.VideoUpdate{ID: first, UserID: owner, CategoryID: &unknown})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_RemoveVideo_Cascades(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	owner, viewer := idN(11000), idN(11001)
	seedUser(t, st, owner, "owner")
	seedUser(t, st, viewer, "viewer")
	vid := idN(11100)
	seedVideo(t, st, vid, owner, "gone", models.VisibilityPublic, time.Now())

	require.NoError(t, st.RecordView(ctx, viewer, vid))
	_, err := st.CreateComment(ctx, models.NewComment{VideoID: vid, UserID: viewer, Value: "hi"})
	require.NoError(t, err)

	require.ErrorIs(t, st.RemoveVideo(ctx, vid, viewer), storage.ErrNotFound)
	require.NoError(t, st.RemoveVideo(ctx, vid, owner))
	require.ErrorIs(t, st.RemoveVideo(ctx, vid, owner), storage.ErrNotFound)

	history, err := st.ListVideos(ctx, storage.FeedQuery{Feed: models.FeedHistory, Viewer: viewer, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, history)

	_, err = st.VideoByID(ctx, vid, viewer)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_ListCategories(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.NotNil(t, cats)
	require.Empty(t, cats)

	_, err = st.db.Exec(ctx, `INSERT INTO categories (name) VALUES ('Sports'), ('Music'), ('Gaming')`)
	require.NoError(t, err)

	cats, err = st.ListCategories(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"Gaming", "Music", "Sports"}, names)
}
